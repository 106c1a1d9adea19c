package services

import (
	"context"
	"log"

	"services-api-server/models"
	"services-api-server/store"
)

// Actions a worker may apply to a service request
const (
	ActionAccept   = "accept"
	ActionReject   = "reject"
	ActionCancel   = "cancel"
	ActionComplete = "complete"
)

// actionStatus maps each recognized action to the status it produces
var actionStatus = map[string]models.ServiceRequestStatus{
	ActionAccept:   models.RequestStatusAccepted,
	ActionReject:   models.RequestStatusRejected,
	ActionCancel:   models.RequestStatusCancelled,
	ActionComplete: models.RequestStatusCompleted,
}

// transitions is the set of target statuses reachable from each status.
// Terminal statuses admit nothing.
var transitions = map[models.ServiceRequestStatus]map[models.ServiceRequestStatus]struct{}{
	models.RequestStatusPending: {
		models.RequestStatusAccepted:  {},
		models.RequestStatusRejected:  {},
		models.RequestStatusCancelled: {},
	},
	models.RequestStatusAccepted: {
		models.RequestStatusCancelled: {},
		models.RequestStatusCompleted: {},
	},
	models.RequestStatusRejected:  {},
	models.RequestStatusCancelled: {},
	models.RequestStatusCompleted: {},
}

// CanTransition returns whether a request may move from one status to another
func CanTransition(from, to models.ServiceRequestStatus) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// LifecycleService owns the service-request state machine: who may create a
// request, who may transition it, and which transitions are legal.
type LifecycleService struct {
	store store.Store

	// permissive skips the transition table, letting the owning worker set
	// any of the four target statuses from any status. Legacy behavior.
	permissive bool
}

// NewLifecycleService creates a lifecycle service over the given store
func NewLifecycleService(st store.Store, permissive bool) *LifecycleService {
	return &LifecycleService{store: st, permissive: permissive}
}

// Create opens a new request from a client to a worker with status pending.
// The caller's client role is enforced at the route; the target worker must
// exist and actually be a worker.
func (s *LifecycleService) Create(ctx context.Context, clientID, workerID uint, description string) (models.ServiceRequest, error) {
	worker, err := s.store.GetUser(ctx, workerID)
	if err != nil {
		if err == store.ErrNotFound {
			return models.ServiceRequest{}, ErrInvalidReference
		}
		return models.ServiceRequest{}, err
	}
	if !worker.IsWorker() {
		return models.ServiceRequest{}, ErrInvalidReference
	}

	request := models.ServiceRequest{
		ClientID:    clientID,
		WorkerID:    workerID,
		Description: description,
		Status:      models.RequestStatusPending,
	}
	if err := s.store.CreateRequest(ctx, &request); err != nil {
		return models.ServiceRequest{}, err
	}

	log.Printf("📋 Service request %d created: client=%d worker=%d", request.ID, clientID, workerID)
	return request, nil
}

// Transition applies a worker action to a request the worker owns. A request
// not owned by the actor is indistinguishable from an absent one.
func (s *LifecycleService) Transition(ctx context.Context, requestID, workerID uint, action string) (models.ServiceRequest, error) {
	target, ok := actionStatus[action]
	if !ok {
		return models.ServiceRequest{}, ErrInvalidAction
	}

	request, err := s.store.GetRequestForWorker(ctx, requestID, workerID)
	if err != nil {
		if err == store.ErrNotFound {
			return models.ServiceRequest{}, ErrNotFound
		}
		return models.ServiceRequest{}, err
	}

	if !s.permissive && !CanTransition(request.Status, target) {
		return models.ServiceRequest{}, ErrInvalidTransition
	}

	updated, err := s.store.UpdateRequestStatus(ctx, request.ID, target)
	if err != nil {
		return models.ServiceRequest{}, err
	}

	log.Printf("📋 Service request %d: %s -> %s (worker=%d)", request.ID, request.Status, target, workerID)
	return updated, nil
}

// ListForWorker returns the worker's requests, newest first
func (s *LifecycleService) ListForWorker(ctx context.Context, workerID uint) ([]models.ServiceRequest, error) {
	return s.store.ListRequestsForWorker(ctx, workerID)
}
