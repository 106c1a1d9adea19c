package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"services-api-server/models"
	"services-api-server/store"
)

func seedWorker(t *testing.T, st *store.MemoryStore) models.User {
	t.Helper()
	verified := true
	worker := models.User{
		Email:      "worker@example.com",
		FirstName:  "Wanda",
		LastName:   "Worker",
		Role:       models.RoleWorker,
		LocationID: 1,
		IsActive:   true,
		IsVerified: &verified,
	}
	require.NoError(t, st.CreateUser(context.Background(), &worker))
	return worker
}

func seedClient(t *testing.T, st *store.MemoryStore) models.User {
	t.Helper()
	client := models.User{
		Email:      "client@example.com",
		FirstName:  "Carla",
		LastName:   "Client",
		Role:       models.RoleClient,
		LocationID: 1,
		IsActive:   true,
	}
	require.NoError(t, st.CreateUser(context.Background(), &client))
	return client
}

func TestCreateServiceRequest(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLifecycleService(st, false)
	worker := seedWorker(t, st)
	client := seedClient(t, st)

	request, err := svc.Create(context.Background(), client.ID, worker.ID, "Fix the kitchen sink")
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, client.ID, request.ClientID)
	assert.Equal(t, worker.ID, request.WorkerID)
	assert.NotZero(t, request.ID)
}

func TestCreateServiceRequestUnknownWorker(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLifecycleService(st, false)
	client := seedClient(t, st)

	_, err := svc.Create(context.Background(), client.ID, 999, "Fix the kitchen sink")
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestCreateServiceRequestTargetNotWorker(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLifecycleService(st, false)
	client := seedClient(t, st)
	other := models.User{
		Email:      "other@example.com",
		Role:       models.RoleClient,
		LocationID: 1,
		IsActive:   true,
	}
	require.NoError(t, st.CreateUser(context.Background(), &other))

	_, err := svc.Create(context.Background(), client.ID, other.ID, "Fix the kitchen sink")
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestTransitionInvalidAction(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLifecycleService(st, false)
	worker := seedWorker(t, st)
	client := seedClient(t, st)

	request, err := svc.Create(context.Background(), client.ID, worker.ID, "Fix the kitchen sink")
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), request.ID, worker.ID, "approve")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestTransitionOwnershipMasksExistence(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLifecycleService(st, false)
	worker := seedWorker(t, st)
	client := seedClient(t, st)

	request, err := svc.Create(context.Background(), client.ID, worker.ID, "Fix the kitchen sink")
	require.NoError(t, err)

	// Another worker acting on the request looks exactly like a missing one
	_, err = svc.Transition(context.Background(), request.ID, worker.ID+100, ActionAccept)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Transition(context.Background(), request.ID+100, worker.ID, ActionAccept)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ServiceRequestStatus
		action  string
		want    models.ServiceRequestStatus
		wantErr error
	}{
		{name: "pending accept", from: models.RequestStatusPending, action: ActionAccept, want: models.RequestStatusAccepted},
		{name: "pending reject", from: models.RequestStatusPending, action: ActionReject, want: models.RequestStatusRejected},
		{name: "pending cancel", from: models.RequestStatusPending, action: ActionCancel, want: models.RequestStatusCancelled},
		{name: "pending complete", from: models.RequestStatusPending, action: ActionComplete, wantErr: ErrInvalidTransition},
		{name: "accepted cancel", from: models.RequestStatusAccepted, action: ActionCancel, want: models.RequestStatusCancelled},
		{name: "accepted complete", from: models.RequestStatusAccepted, action: ActionComplete, want: models.RequestStatusCompleted},
		{name: "accepted accept", from: models.RequestStatusAccepted, action: ActionAccept, wantErr: ErrInvalidTransition},
		{name: "rejected accept", from: models.RequestStatusRejected, action: ActionAccept, wantErr: ErrInvalidTransition},
		{name: "cancelled complete", from: models.RequestStatusCancelled, action: ActionComplete, wantErr: ErrInvalidTransition},
		{name: "completed cancel", from: models.RequestStatusCompleted, action: ActionCancel, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemoryStore()
			svc := NewLifecycleService(st, false)
			worker := seedWorker(t, st)
			client := seedClient(t, st)

			request, err := svc.Create(context.Background(), client.ID, worker.ID, "Fix the kitchen sink")
			require.NoError(t, err)
			if tt.from != models.RequestStatusPending {
				_, err = st.UpdateRequestStatus(context.Background(), request.ID, tt.from)
				require.NoError(t, err)
			}

			updated, err := svc.Transition(context.Background(), request.ID, worker.ID, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, updated.Status)
		})
	}
}

func TestTransitionPermissiveMode(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLifecycleService(st, true)
	worker := seedWorker(t, st)
	client := seedClient(t, st)

	request, err := svc.Create(context.Background(), client.ID, worker.ID, "Fix the kitchen sink")
	require.NoError(t, err)
	_, err = st.UpdateRequestStatus(context.Background(), request.ID, models.RequestStatusCompleted)
	require.NoError(t, err)

	// Permissive mode lets the owner move a terminal request
	updated, err := svc.Transition(context.Background(), request.ID, worker.ID, ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, updated.Status)

	// Unrecognized actions are still rejected
	_, err = svc.Transition(context.Background(), request.ID, worker.ID, "finish")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestListForWorkerNewestFirst(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLifecycleService(st, false)
	worker := seedWorker(t, st)
	client := seedClient(t, st)

	first, err := svc.Create(context.Background(), client.ID, worker.ID, "First request here")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), client.ID, worker.ID, "Second request here")
	require.NoError(t, err)

	requests, err := svc.ListForWorker(context.Background(), worker.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, second.ID, requests[0].ID)
	assert.Equal(t, first.ID, requests[1].ID)
}

func TestCanTransitionTerminalStatuses(t *testing.T) {
	terminals := []models.ServiceRequestStatus{
		models.RequestStatusRejected,
		models.RequestStatusCancelled,
		models.RequestStatusCompleted,
	}
	targets := []models.ServiceRequestStatus{
		models.RequestStatusPending,
		models.RequestStatusAccepted,
		models.RequestStatusRejected,
		models.RequestStatusCancelled,
		models.RequestStatusCompleted,
	}
	for _, from := range terminals {
		for _, to := range targets {
			assert.Falsef(t, CanTransition(from, to), "%s -> %s should not be allowed", from, to)
		}
	}
}
