package models

import (
	"time"
)

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleWorker UserRole = "worker"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	FirstName     string    `json:"first_name" gorm:"size:50;not null"`
	LastName      string    `json:"last_name" gorm:"size:50;not null"`
	DNI           string    `json:"dni" gorm:"size:8;not null"`
	PhoneNumber   string    `json:"phone_number" gorm:"size:15;not null"`
	Role          UserRole  `json:"role" gorm:"type:varchar(20);not null;check:role IN ('client','worker')"`
	LocationID    uint      `json:"location_id"`
	CategoryID    *uint     `json:"category_id,omitempty"` // Workers only
	Address       string    `json:"address,omitempty" gorm:"size:200"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	IsVerified    *bool     `json:"is_verified"` // nil for clients, false until verified for workers
	AverageRating float64   `json:"average_rating" gorm:"default:0"`
	RatingsCount  int       `json:"ratings_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsWorker checks if the user is a worker
func (u *User) IsWorker() bool {
	return u.Role == RoleWorker
}

// IsClient checks if the user is a client
func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// NeedsVerification reports whether the user is a worker pending manual verification
func (u *User) NeedsVerification() bool {
	return u.Role == RoleWorker && (u.IsVerified == nil || !*u.IsVerified)
}

// ClientRegister represents the registration payload for clients
type ClientRegister struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name" binding:"required,min=2,max=50"`
	LastName    string `json:"last_name" binding:"required,min=2,max=50"`
	DNI         string `json:"dni" binding:"required,min=7,max=8"`
	PhoneNumber string `json:"phone_number" binding:"required,min=10,max=15"`
	LocationID  uint   `json:"location_id" binding:"required"`
	Address     string `json:"address" binding:"required,min=5,max=200"`
}

// WorkerRegister represents the registration payload for workers
type WorkerRegister struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name" binding:"required,min=2,max=50"`
	LastName    string `json:"last_name" binding:"required,min=2,max=50"`
	DNI         string `json:"dni" binding:"required,min=7,max=8"`
	PhoneNumber string `json:"phone_number" binding:"required,min=10,max=15"`
	LocationID  uint   `json:"location_id" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Address     string `json:"address" binding:"omitempty,min=5,max=200"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserUpdate represents the mutable profile fields
type UserUpdate struct {
	FirstName   string `json:"first_name" binding:"omitempty,min=2,max=50"`
	LastName    string `json:"last_name" binding:"omitempty,min=2,max=50"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,min=10,max=15"`
	Address     string `json:"address" binding:"omitempty,min=5,max=200"`
}
