package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/formchat/backend/internal/model"
	"github.com/formchat/backend/internal/repository"
)

// authServiceImpl is the production implementation of AuthService.
type authServiceImpl struct {
	users         repository.UserRepository
	adminUsername string
	adminPassword string
}

// NewAuthService creates an AuthService backed by the given repository.
// adminUsername/adminPassword are the fixed admin credentials.
func NewAuthService(users repository.UserRepository, adminUsername, adminPassword string) AuthService {
	return &authServiceImpl{
		users:         users,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// Register creates a new user. Username and email uniqueness are checked
// up front; the unique index on username backstops the race between check
// and insert.
func (s *authServiceImpl) Register(ctx context.Context, username, email, gender, password string) (*model.User, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		Gender:       gender,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the supplied password against the stored bcrypt hash.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AdminLogin compares against the configured admin credentials literally.
func (s *authServiceImpl) AdminLogin(username, password string) bool {
	return username == s.adminUsername && password == s.adminPassword
}
