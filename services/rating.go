package services

import (
	"context"
	"log"

	"services-api-server/models"
	"services-api-server/store"
)

// RatingService records a single client rating per completed request and
// recomputes the worker's reputation projection from the full rating set.
type RatingService struct {
	store store.Store
}

// NewRatingService creates a rating service over the given store
func NewRatingService(st store.Store) *RatingService {
	return &RatingService{store: st}
}

// Rate inserts a rating for a completed request and returns the worker's
// freshly recomputed average and count.
//
// The existence check and the insert are not wrapped in a transaction, so two
// concurrent raters for the same (request, client) pair can both pass the
// check. Best-effort; the full recompute keeps the projection self-healing.
func (s *RatingService) Rate(ctx context.Context, requestID, clientID uint, rating int) (models.RatingSummary, error) {
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		if err == store.ErrNotFound {
			return models.RatingSummary{}, ErrNotFound
		}
		return models.RatingSummary{}, err
	}

	if request.Status != models.RequestStatusCompleted {
		return models.RatingSummary{}, ErrInvalidStatus
	}
	if request.ClientID != clientID {
		return models.RatingSummary{}, ErrForbidden
	}

	exists, err := s.store.RatingExists(ctx, requestID, clientID)
	if err != nil {
		return models.RatingSummary{}, err
	}
	if exists {
		return models.RatingSummary{}, ErrAlreadyRated
	}

	record := models.ServiceRating{
		ServiceRequestID: requestID,
		WorkerID:         request.WorkerID,
		ClientID:         clientID,
		Rating:           rating,
	}
	if err := s.store.CreateRating(ctx, &record); err != nil {
		return models.RatingSummary{}, err
	}

	summary, err := s.recompute(ctx, request.WorkerID)
	if err != nil {
		return models.RatingSummary{}, err
	}

	log.Printf("⭐ Worker %d rated %d on request %d (avg=%.2f count=%d)",
		request.WorkerID, rating, requestID, summary.AverageRating, summary.RatingsCount)
	return summary, nil
}

// recompute rebuilds the worker's average and count from every stored rating
// and overwrites the projection on the user row.
func (s *RatingService) recompute(ctx context.Context, workerID uint) (models.RatingSummary, error) {
	ratings, err := s.store.ListRatingsForWorker(ctx, workerID)
	if err != nil {
		return models.RatingSummary{}, err
	}

	var sum int
	for _, r := range ratings {
		sum += r.Rating
	}
	average := 0.0
	if len(ratings) > 0 {
		average = float64(sum) / float64(len(ratings))
	}

	if err := s.store.UpdateWorkerRatingStats(ctx, workerID, average, len(ratings)); err != nil {
		return models.RatingSummary{}, err
	}

	return models.RatingSummary{AverageRating: average, RatingsCount: len(ratings)}, nil
}
