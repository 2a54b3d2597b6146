package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/logger"

	"dailydraw/internal/models"
	"dailydraw/internal/storage"
)

var (
	ErrInvalidUser     = errors.New("invalid user")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrAddressLinked   = errors.New("address is already linked to another user")
	ErrAddressRequired = errors.New("address is required")
)

// UserService manages the identity records draws are attached to.
type UserService struct {
	users storage.Users
}

func NewUserService(users storage.Users) *UserService {
	return &UserService{users: users}
}

// Register creates a user. Empty addresses are stored as absent.
func (s *UserService) Register(ctx context.Context, username, farcaster, wallet string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidUser)
	}

	user := models.User{
		Username:         username,
		FarcasterAddress: optional(farcaster),
		WalletAddress:    optional(wallet),
	}
	created, err := s.users.CreateUser(ctx, user)
	if errors.Is(err, storage.ErrConflict) {
		if _, lookupErr := s.users.GetUserByUsername(ctx, username); lookupErr == nil {
			return nil, ErrUsernameTaken
		}
		return nil, ErrAddressLinked
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Infof("Registered user %d (%s)", created.ID, created.Username)
	return created, nil
}

// EnsureUser returns the user named username, creating it when missing.
func (s *UserService) EnsureUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return s.Register(ctx, username, "", "")
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return notFoundAsUser(s.users.GetUser(ctx, id))
}

func (s *UserService) GetByFarcaster(ctx context.Context, address string) (*models.User, error) {
	return notFoundAsUser(s.users.GetUserByFarcasterAddress(ctx, address))
}

func (s *UserService) GetByWallet(ctx context.Context, address string) (*models.User, error) {
	return notFoundAsUser(s.users.GetUserByWalletAddress(ctx, address))
}

func (s *UserService) LinkWallet(ctx context.Context, id int64, address string) (*models.User, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrAddressRequired
	}
	return linkResult(s.users.UpdateUserWallet(ctx, id, address))
}

func (s *UserService) LinkFarcaster(ctx context.Context, id int64, address string) (*models.User, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrAddressRequired
	}
	return linkResult(s.users.UpdateUserFarcaster(ctx, id, address))
}

func linkResult(user *models.User, err error) (*models.User, error) {
	if errors.Is(err, storage.ErrConflict) {
		return nil, ErrAddressLinked
	}
	return notFoundAsUser(user, err)
}

func notFoundAsUser(user *models.User, err error) (*models.User, error) {
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user store: %w", err)
	}
	return user, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
