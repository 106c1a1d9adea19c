package models

import (
	"time"
)

// ServiceMessage represents a single chat message scoped to a service request.
// Messages are append-only, never updated or deleted.
type ServiceMessage struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ServiceRequestID uint      `json:"service_request_id" gorm:"not null;index"`
	SenderID         uint      `json:"sender_id" gorm:"not null"`
	Message          string    `json:"message" gorm:"type:text;not null"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the ServiceMessage model
func (ServiceMessage) TableName() string {
	return "service_messages"
}
