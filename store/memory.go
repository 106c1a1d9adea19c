package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"services-api-server/models"
)

// MemoryStore is an in-memory Store used by tests. Records live in maps
// guarded by one mutex; IDs are assigned from per-kind counters.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[uint]models.User
	requests   map[uint]models.ServiceRequest
	messages   []models.ServiceMessage
	ratings    []models.ServiceRating
	locations  map[uint]models.Location
	categories map[uint]models.Category
	nextID     map[string]uint
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uint]models.User),
		requests:   make(map[uint]models.ServiceRequest),
		locations:  make(map[uint]models.Location),
		categories: make(map[uint]models.Category),
		nextID:     make(map[string]uint),
	}
}

func (s *MemoryStore) allocID(kind string) uint {
	s.nextID[kind]++
	return s.nextID[kind]
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = s.allocID("user")
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id uint) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) UpdateWorkerRatingStats(ctx context.Context, workerID uint, average float64, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[workerID]
	if !ok {
		return ErrNotFound
	}
	user.AverageRating = average
	user.RatingsCount = count
	user.UpdatedAt = time.Now()
	s.users[workerID] = user
	return nil
}

func (s *MemoryStore) SearchWorkers(ctx context.Context, categoryID, locationID uint) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var workers []models.User
	for _, user := range s.users {
		if user.Role != models.RoleWorker {
			continue
		}
		if user.IsVerified == nil || !*user.IsVerified {
			continue
		}
		if categoryID != 0 && (user.CategoryID == nil || *user.CategoryID != categoryID) {
			continue
		}
		if locationID != 0 && user.LocationID != locationID {
			continue
		}
		workers = append(workers, user)
	}
	sort.Slice(workers, func(i, j int) bool {
		return workers[i].AverageRating > workers[j].AverageRating
	})
	return workers, nil
}

func (s *MemoryStore) CreateRequest(ctx context.Context, request *models.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if request.ID == 0 {
		request.ID = s.allocID("request")
	}
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	s.requests[request.ID] = *request
	return nil
}

func (s *MemoryStore) GetRequest(ctx context.Context, id uint) (models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		return models.ServiceRequest{}, ErrNotFound
	}
	return request, nil
}

func (s *MemoryStore) GetRequestForWorker(ctx context.Context, id, workerID uint) (models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok || request.WorkerID != workerID {
		return models.ServiceRequest{}, ErrNotFound
	}
	return request, nil
}

func (s *MemoryStore) ListRequestsForWorker(ctx context.Context, workerID uint) ([]models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var requests []models.ServiceRequest
	for _, request := range s.requests {
		if request.WorkerID == workerID {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].ID > requests[j].ID
		}
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (s *MemoryStore) UpdateRequestStatus(ctx context.Context, id uint, status models.ServiceRequestStatus) (models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		return models.ServiceRequest{}, ErrNotFound
	}
	request.Status = status
	request.UpdatedAt = time.Now()
	s.requests[id] = request
	return request, nil
}

func (s *MemoryStore) CreateMessage(ctx context.Context, message *models.ServiceMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message.ID == 0 {
		message.ID = s.allocID("message")
	}
	message.CreatedAt = time.Now()
	s.messages = append(s.messages, *message)
	return nil
}

func (s *MemoryStore) ListMessages(ctx context.Context, requestID uint) ([]models.ServiceMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var messages []models.ServiceMessage
	for _, message := range s.messages {
		if message.ServiceRequestID == requestID {
			messages = append(messages, message)
		}
	}
	return messages, nil
}

func (s *MemoryStore) CreateRating(ctx context.Context, rating *models.ServiceRating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rating.ID == 0 {
		rating.ID = s.allocID("rating")
	}
	rating.CreatedAt = time.Now()
	s.ratings = append(s.ratings, *rating)
	return nil
}

func (s *MemoryStore) RatingExists(ctx context.Context, requestID, clientID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rating := range s.ratings {
		if rating.ServiceRequestID == requestID && rating.ClientID == clientID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ListRatingsForWorker(ctx context.Context, workerID uint) ([]models.ServiceRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ratings []models.ServiceRating
	for _, rating := range s.ratings {
		if rating.WorkerID == workerID {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}

func (s *MemoryStore) CreateLocation(ctx context.Context, location *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if location.ID == 0 {
		location.ID = s.allocID("location")
	}
	now := time.Now()
	location.CreatedAt = now
	location.UpdatedAt = now
	s.locations[location.ID] = *location
	return nil
}

func (s *MemoryStore) CreateCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category.ID == 0 {
		category.ID = s.allocID("category")
	}
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	s.categories[category.ID] = *category
	return nil
}

func (s *MemoryStore) GetLocation(ctx context.Context, id uint) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	location, ok := s.locations[id]
	if !ok {
		return models.Location{}, ErrNotFound
	}
	return location, nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id uint) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, ErrNotFound
	}
	return category, nil
}

func (s *MemoryStore) ListLocations(ctx context.Context) ([]models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var locations []models.Location
	for _, location := range s.locations {
		locations = append(locations, location)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

func (s *MemoryStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var categories []models.Category
	for _, category := range s.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}
