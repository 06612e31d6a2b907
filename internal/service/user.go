package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// UserService handles registration, authentication, and account removal.
type UserService struct {
	store      database.Store
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(store database.Store, bcryptCost int) *UserService {
	return &UserService{store: store, bcryptCost: bcryptCost}
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req user.CreateRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := user.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           req.Role,
		FullName:       req.FullName,
		IDNumber:       req.IDNumber,
		PassportNumber: req.PassportNumber,
		Phone:          req.Phone,
	}
	if err := s.store.CreateUser(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate verifies a username/password pair. A wrong password is
// reported the same way as an unknown username.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("authenticate %s: %w", username, domain.ErrNotFound)
	}
	return u, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*user.User, error) {
	return s.store.GetUser(ctx, id)
}

// List returns all users. Admin only.
func (s *UserService) List(ctx context.Context, actor *user.User) ([]user.User, error) {
	if !actor.IsAdmin() {
		return nil, forbid("user listing requires admin")
	}
	return s.store.ListUsers(ctx)
}
