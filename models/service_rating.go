package models

import (
	"time"
)

// ServiceRating represents a client's rating of a worker for one completed
// service request. At most one rating per (service_request_id, client_id)
// pair; the check happens before insert, not as a store constraint.
type ServiceRating struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ServiceRequestID uint      `json:"service_request_id" gorm:"not null;index"`
	WorkerID         uint      `json:"worker_id" gorm:"not null;index"`
	ClientID         uint      `json:"client_id" gorm:"not null"`
	Rating           int       `json:"rating" gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the ServiceRating model
func (ServiceRating) TableName() string {
	return "service_ratings"
}

// ServiceRatingCreate represents the rating payload
type ServiceRatingCreate struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RatingSummary is the worker reputation projection returned after rating
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	RatingsCount  int     `json:"ratings_count"`
}
