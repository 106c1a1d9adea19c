package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"services-api-server/models"
)

// GormStore is the Postgres-backed Store implementation
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given gorm connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *GormStore) UpdateUser(ctx context.Context, user *models.User) error {
	res := s.db.WithContext(ctx).Save(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) UpdateWorkerRatingStats(ctx context.Context, workerID uint, average float64, count int) error {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", workerID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"ratings_count":  count,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) SearchWorkers(ctx context.Context, categoryID, locationID uint) ([]models.User, error) {
	var workers []models.User
	q := s.db.WithContext(ctx).
		Where("role = ? AND is_verified = ?", models.RoleWorker, true)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if locationID != 0 {
		q = q.Where("location_id = ?", locationID)
	}
	err := q.Order("average_rating DESC").Find(&workers).Error
	return workers, err
}

func (s *GormStore) CreateRequest(ctx context.Context, request *models.ServiceRequest) error {
	return s.db.WithContext(ctx).Create(request).Error
}

func (s *GormStore) GetRequest(ctx context.Context, id uint) (models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := s.db.WithContext(ctx).First(&request, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ServiceRequest{}, ErrNotFound
	}
	return request, err
}

func (s *GormStore) GetRequestForWorker(ctx context.Context, id, workerID uint) (models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := s.db.WithContext(ctx).
		Where("id = ? AND worker_id = ?", id, workerID).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ServiceRequest{}, ErrNotFound
	}
	return request, err
}

func (s *GormStore) ListRequestsForWorker(ctx context.Context, workerID uint) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := s.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (s *GormStore) UpdateRequestStatus(ctx context.Context, id uint, status models.ServiceRequestStatus) (models.ServiceRequest, error) {
	res := s.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return models.ServiceRequest{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.ServiceRequest{}, ErrNotFound
	}
	return s.GetRequest(ctx, id)
}

func (s *GormStore) CreateMessage(ctx context.Context, message *models.ServiceMessage) error {
	return s.db.WithContext(ctx).Create(message).Error
}

func (s *GormStore) ListMessages(ctx context.Context, requestID uint) ([]models.ServiceMessage, error) {
	var messages []models.ServiceMessage
	err := s.db.WithContext(ctx).
		Where("service_request_id = ?", requestID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (s *GormStore) CreateRating(ctx context.Context, rating *models.ServiceRating) error {
	return s.db.WithContext(ctx).Create(rating).Error
}

func (s *GormStore) RatingExists(ctx context.Context, requestID, clientID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ServiceRating{}).
		Where("service_request_id = ? AND client_id = ?", requestID, clientID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) ListRatingsForWorker(ctx context.Context, workerID uint) ([]models.ServiceRating, error) {
	var ratings []models.ServiceRating
	err := s.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Find(&ratings).Error
	return ratings, err
}

func (s *GormStore) CreateLocation(ctx context.Context, location *models.Location) error {
	return s.db.WithContext(ctx).Create(location).Error
}

func (s *GormStore) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *GormStore) GetLocation(ctx context.Context, id uint) (models.Location, error) {
	var location models.Location
	err := s.db.WithContext(ctx).First(&location, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Location{}, ErrNotFound
	}
	return location, err
}

func (s *GormStore) GetCategory(ctx context.Context, id uint) (models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, ErrNotFound
	}
	return category, err
}

func (s *GormStore) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := s.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (s *GormStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}
