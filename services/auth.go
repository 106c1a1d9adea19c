package services

import (
	"context"

	"services-api-server/models"
	"services-api-server/store"
	"services-api-server/utils"
)

// AuthService handles registration and credential verification. Tokens are
// HS256 JWTs carrying the user id and role.
type AuthService struct {
	store store.Store
}

// NewAuthService creates an auth service over the given store
func NewAuthService(st store.Store) *AuthService {
	return &AuthService{store: st}
}

// LoginResult is the payload returned on a successful login
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// RegisterClient creates a client account. Clients require an address and an
// existing location.
func (s *AuthService) RegisterClient(ctx context.Context, req models.ClientRegister) (models.User, error) {
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return models.User{}, ErrUserExists
	} else if err != store.ErrNotFound {
		return models.User{}, err
	}

	if _, err := s.store.GetLocation(ctx, req.LocationID); err != nil {
		if err == store.ErrNotFound {
			return models.User{}, ErrInvalidReference
		}
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DNI:          req.DNI,
		PhoneNumber:  req.PhoneNumber,
		Role:         models.RoleClient,
		LocationID:   req.LocationID,
		Address:      req.Address,
		IsActive:     true,
		IsVerified:   nil, // clients never need verification
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// RegisterWorker creates a worker account. Workers require an existing
// category and location, and start unverified.
func (s *AuthService) RegisterWorker(ctx context.Context, req models.WorkerRegister) (models.User, error) {
	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return models.User{}, ErrUserExists
	} else if err != store.ErrNotFound {
		return models.User{}, err
	}

	if _, err := s.store.GetLocation(ctx, req.LocationID); err != nil {
		if err == store.ErrNotFound {
			return models.User{}, ErrInvalidReference
		}
		return models.User{}, err
	}
	if _, err := s.store.GetCategory(ctx, req.CategoryID); err != nil {
		if err == store.ErrNotFound {
			return models.User{}, ErrInvalidReference
		}
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	verified := false
	categoryID := req.CategoryID
	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DNI:          req.DNI,
		PhoneNumber:  req.PhoneNumber,
		Role:         models.RoleWorker,
		LocationID:   req.LocationID,
		CategoryID:   &categoryID,
		Address:      req.Address,
		IsActive:     true,
		IsVerified:   &verified, // workers are verified manually
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token. Unverified workers
// cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if err == store.ErrNotFound {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return LoginResult{}, ErrInvalidCredentials
	}
	if user.NeedsVerification() {
		return LoginResult{}, ErrWorkerNotVerified
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
