package models

import (
	"time"
)

// ServiceRequestStatus represents the current status of a service request
type ServiceRequestStatus string

const (
	RequestStatusPending   ServiceRequestStatus = "pending"
	RequestStatusAccepted  ServiceRequestStatus = "accepted"
	RequestStatusRejected  ServiceRequestStatus = "rejected"
	RequestStatusCancelled ServiceRequestStatus = "cancelled"
	RequestStatusCompleted ServiceRequestStatus = "completed"
)

// IsTerminal reports whether no further transition is allowed from the status
func (s ServiceRequestStatus) IsTerminal() bool {
	switch s {
	case RequestStatusRejected, RequestStatusCancelled, RequestStatusCompleted:
		return true
	default:
		return false
	}
}

// ServiceRequest represents a unit of work proposed by a client to a specific worker.
// Rows are never deleted; terminal statuses are permanent markers.
type ServiceRequest struct {
	ID          uint                 `json:"id" gorm:"primaryKey"`
	ClientID    uint                 `json:"client_id" gorm:"not null;index"`
	WorkerID    uint                 `json:"worker_id" gorm:"not null;index"`
	Description string               `json:"description" gorm:"type:text;not null"`
	Status      ServiceRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time            `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time            `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the ServiceRequest model
func (ServiceRequest) TableName() string {
	return "service_requests"
}

// Participant reports whether the user is one of the two parties of the request
func (r *ServiceRequest) Participant(userID uint) bool {
	return userID == r.ClientID || userID == r.WorkerID
}

// ServiceRequestCreate represents the creation payload
type ServiceRequestCreate struct {
	WorkerID    uint   `json:"worker_id" binding:"required"`
	Description string `json:"description" binding:"required,min=5,max=500"`
}

// ServiceRequestAction represents the worker's action payload
type ServiceRequestAction struct {
	Action string `json:"action" binding:"required"`
}
