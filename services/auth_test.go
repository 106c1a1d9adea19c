package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"services-api-server/config"
	"services-api-server/models"
	"services-api-server/store"
)

func TestMain(m *testing.M) {
	config.Load()
	os.Exit(m.Run())
}

func seedReferenceRows(t *testing.T, st *store.MemoryStore) (models.Location, models.Category) {
	t.Helper()
	location := models.Location{Name: "Asunción"}
	require.NoError(t, st.CreateLocation(context.Background(), &location))
	category := models.Category{Name: "Plomería"}
	require.NoError(t, st.CreateCategory(context.Background(), &category))
	return location, category
}

func clientPayload(location models.Location) models.ClientRegister {
	return models.ClientRegister{
		Email:       "carla@example.com",
		Password:    "supersecret1",
		FirstName:   "Carla",
		LastName:    "Client",
		DNI:         "1234567",
		PhoneNumber: "0981123456",
		LocationID:  location.ID,
		Address:     "Avda. Mariscal López 1234",
	}
}

func workerPayload(location models.Location, category models.Category) models.WorkerRegister {
	return models.WorkerRegister{
		Email:       "wanda@example.com",
		Password:    "supersecret1",
		FirstName:   "Wanda",
		LastName:    "Worker",
		DNI:         "7654321",
		PhoneNumber: "0981654321",
		LocationID:  location.ID,
		CategoryID:  category.ID,
	}
}

func TestRegisterClient(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)
	location, _ := seedReferenceRows(t, st)

	user, err := svc.RegisterClient(context.Background(), clientPayload(location))
	require.NoError(t, err)

	assert.Equal(t, models.RoleClient, user.Role)
	assert.Nil(t, user.IsVerified)
	assert.Nil(t, user.CategoryID)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "supersecret1", user.PasswordHash)
}

func TestRegisterClientDuplicateEmail(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)
	location, _ := seedReferenceRows(t, st)

	_, err := svc.RegisterClient(context.Background(), clientPayload(location))
	require.NoError(t, err)

	_, err = svc.RegisterClient(context.Background(), clientPayload(location))
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterClientUnknownLocation(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)

	payload := clientPayload(models.Location{ID: 99})
	_, err := svc.RegisterClient(context.Background(), payload)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestRegisterWorker(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)
	location, category := seedReferenceRows(t, st)

	user, err := svc.RegisterWorker(context.Background(), workerPayload(location, category))
	require.NoError(t, err)

	assert.Equal(t, models.RoleWorker, user.Role)
	require.NotNil(t, user.IsVerified)
	assert.False(t, *user.IsVerified)
	require.NotNil(t, user.CategoryID)
	assert.Equal(t, category.ID, *user.CategoryID)
}

func TestRegisterWorkerUnknownCategory(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)
	location := models.Location{Name: "Asunción"}
	require.NoError(t, st.CreateLocation(context.Background(), &location))

	payload := workerPayload(location, models.Category{ID: 99})
	_, err := svc.RegisterWorker(context.Background(), payload)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestLogin(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)
	location, _ := seedReferenceRows(t, st)

	registered, err := svc.RegisterClient(context.Background(), clientPayload(location))
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), registered.Email, "supersecret1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "bearer", result.TokenType)
	assert.Equal(t, registered.ID, result.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)
	location, _ := seedReferenceRows(t, st)

	_, err := svc.RegisterClient(context.Background(), clientPayload(location))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "carla@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnverifiedWorker(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)
	location, category := seedReferenceRows(t, st)

	worker, err := svc.RegisterWorker(context.Background(), workerPayload(location, category))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), worker.Email, "supersecret1")
	assert.ErrorIs(t, err, ErrWorkerNotVerified)

	// Verified workers log in normally
	verified := true
	worker.IsVerified = &verified
	require.NoError(t, st.UpdateUser(context.Background(), &worker))

	result, err := svc.Login(context.Background(), worker.Email, "supersecret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorker, result.User.Role)
}

func TestLoginInactiveUser(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAuthService(st)
	location, _ := seedReferenceRows(t, st)

	user, err := svc.RegisterClient(context.Background(), clientPayload(location))
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, st.UpdateUser(context.Background(), &user))

	_, err = svc.Login(context.Background(), user.Email, "supersecret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
