package service

import (
	"context"
	"errors"

	"github.com/formchat/backend/internal/model"
)

// ErrInvalidCredentials is returned on any login failure. It deliberately
// does not distinguish an unknown username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUsernameTaken is returned when registering with a username that is
// already in use.
var ErrUsernameTaken = errors.New("username already taken")

// ErrEmailTaken is returned when registering with an email that is already
// in use.
var ErrEmailTaken = errors.New("email already taken")

// AuthService defines the business logic for registration and login.
type AuthService interface {
	// Register creates a new user with a freshly computed password hash.
	// The plaintext password is never persisted.
	Register(ctx context.Context, username, email, gender, password string) (*model.User, error)

	// Login verifies the password against the stored hash and returns the
	// user, or ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*model.User, error)

	// AdminLogin checks the supplied credentials against the configured
	// admin account by literal equality, no hashing. This mirrors the
	// historical fixed-credential admin check; the credentials themselves
	// are a configuration point.
	AdminLogin(username, password string) bool
}
