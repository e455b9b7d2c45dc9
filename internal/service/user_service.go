package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"videogames-be/internal/credentials"
	"videogames-be/internal/entities"
	"videogames-be/internal/models"
	"videogames-be/internal/projection"
	"videogames-be/internal/repository"
	"videogames-be/internal/validation"
)

// UserService defines the interface for user account management. Users are
// never cached.
type UserService interface {
	List(ctx context.Context, page models.Page) ([]*entities.User, error)
	Get(ctx context.Context, id int64) (*entities.User, error)
	Create(ctx context.Context, in projection.Input) (*entities.User, error)
	Update(ctx context.Context, id int64, in projection.Input) (*entities.User, error)
	Delete(ctx context.Context, id int64) error
	// EnsureAdmin makes sure an account with the email exists and holds
	// ROLE_ADMIN. The password is only used when the account is created.
	EnsureAdmin(ctx context.Context, email, password string) (*entities.User, error)
}

type userService struct {
	repo      repository.UserRepository
	hasher    credentials.Hasher
	validator *validation.Validator
}

func NewUserService(repo repository.UserRepository, hasher credentials.Hasher, validator *validation.Validator) UserService {
	return &userService{
		repo:      repo,
		hasher:    hasher,
		validator: validator,
	}
}

var errPasswordRequired = newValidationError(validation.Violation{
	Field:   "password",
	Rule:    "required",
	Message: "The password is required.",
})

func (s *userService) List(ctx context.Context, page models.Page) ([]*entities.User, error) {
	users, err := s.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, storageError("list users", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*entities.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get user", err)
	}
	return user, nil
}

// Create rejects a payload without a non-empty password before looking at
// anything else. New accounts always start with ROLE_USER only.
func (s *userService) Create(ctx context.Context, in projection.Input) (*entities.User, error) {
	if !in.Has("password") {
		return nil, errPasswordRequired
	}
	password, err := in.String("password")
	if err != nil || password == "" {
		return nil, errPasswordRequired
	}

	user := &entities.User{Roles: []string{entities.RoleUser}}
	m := newMerger(in)
	m.string("email", &user.Email)
	if err := m.check(s.validator, user); err != nil {
		return nil, err
	}
	if err := s.checkEmailAvailable(ctx, user); err != nil {
		return nil, err
	}

	if user.PasswordHash, err = s.hasher.Hash(password); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTaken()
		}
		return nil, storageError("create user", err)
	}
	return user, nil
}

// Update replaces the email when present and not null, and re-hashes the
// password only when a non-empty one is supplied.
func (s *userService) Update(ctx context.Context, id int64, in projection.Input) (*entities.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("get user", err)
	}

	m := newMerger(in)
	if !in.IsNull("email") {
		m.string("email", &user.Email)
	}
	password := m.secret("password")
	if err := m.check(s.validator, user); err != nil {
		return nil, err
	}
	if err := s.checkEmailAvailable(ctx, user); err != nil {
		return nil, err
	}

	if password != "" {
		if user.PasswordHash, err = s.hasher.Hash(password); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTaken()
		}
		return nil, storageError("update user", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageError("delete user", err)
	}
	return nil
}

func (s *userService) EnsureAdmin(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if slices.Contains(user.Roles, entities.RoleAdmin) {
			return user, nil
		}
		user.Roles = append(user.Roles, entities.RoleAdmin)
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, storageError("promote admin", err)
		}
		return user, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storageError("find admin", err)
	}

	user = &entities.User{Email: email, Roles: []string{entities.RoleAdmin}}
	if violations := s.validator.Struct(user); violations != nil {
		return nil, newValidationError(violations...)
	}
	if user.PasswordHash, err = s.hasher.Hash(password); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, storageError("create admin", err)
	}
	return user, nil
}

// checkEmailAvailable reports a unique violation when another account
// already uses the email.
func (s *userService) checkEmailAvailable(ctx context.Context, user *entities.User) error {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check email: %w", err)
	case existing.ID != user.ID:
		return emailTaken()
	}
	return nil
}

func emailTaken() error {
	return newValidationError(validation.Violation{
		Field:   "email",
		Rule:    "unique",
		Message: "This email is already used.",
	})
}
