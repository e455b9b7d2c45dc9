package service

import (
	"context"
	"errors"
	"fmt"

	"videogames-be/internal/credentials"
	"videogames-be/internal/models"
	"videogames-be/internal/repository"
)

//go:generate mockgen -destination=../mocks/mock_token_issuer.go -package=mocks videogames-be/internal/service TokenIssuer

// TokenIssuer mints signed access tokens.
type TokenIssuer interface {
	GenerateToken(userID int64, email string, roles []string) (string, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   credentials.Hasher
	tokens   TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, hasher credentials.Hasher, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	// Find user by email
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Verify password
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// Generate JWT token
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.EffectiveRoles())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{Token: token}, nil
}
