package store

import (
	"context"
	"errors"

	"services-api-server/models"
)

// ErrNotFound is returned when a record matching the predicate does not exist
var ErrNotFound = errors.New("record not found")

// Store abstracts CRUD over the record kinds the system owns: users, service
// requests, service messages, service ratings and the static reference
// tables. The production implementation is Postgres via gorm; tests use the
// in-memory implementation.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateWorkerRatingStats(ctx context.Context, workerID uint, average float64, count int) error
	SearchWorkers(ctx context.Context, categoryID, locationID uint) ([]models.User, error)

	// Service requests
	CreateRequest(ctx context.Context, request *models.ServiceRequest) error
	GetRequest(ctx context.Context, id uint) (models.ServiceRequest, error)
	GetRequestForWorker(ctx context.Context, id, workerID uint) (models.ServiceRequest, error)
	ListRequestsForWorker(ctx context.Context, workerID uint) ([]models.ServiceRequest, error)
	UpdateRequestStatus(ctx context.Context, id uint, status models.ServiceRequestStatus) (models.ServiceRequest, error)

	// Service messages
	CreateMessage(ctx context.Context, message *models.ServiceMessage) error
	ListMessages(ctx context.Context, requestID uint) ([]models.ServiceMessage, error)

	// Service ratings
	CreateRating(ctx context.Context, rating *models.ServiceRating) error
	RatingExists(ctx context.Context, requestID, clientID uint) (bool, error)
	ListRatingsForWorker(ctx context.Context, workerID uint) ([]models.ServiceRating, error)

	// Reference tables
	CreateLocation(ctx context.Context, location *models.Location) error
	CreateCategory(ctx context.Context, category *models.Category) error
	GetLocation(ctx context.Context, id uint) (models.Location, error)
	GetCategory(ctx context.Context, id uint) (models.Category, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}
