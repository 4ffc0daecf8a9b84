package repository

import (
	"context"

	"github.com/formchat/backend/internal/model"
)

// DB is the liveness-check interface exposed to the health handler.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository is the persistence interface for registered users.
type UserRepository interface {
	// Create inserts a new user and populates user.ID.
	// Returns ErrConflict when the username is already taken.
	Create(ctx context.Context, user *model.User) error
	// FindByUsername returns the user with the given username or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByEmail returns the user with the given email or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByID returns the user with the given id or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// FindByIDs returns the users whose ids appear in ids, in one query.
	// Missing ids are silently absent from the result.
	FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error)
	// Search returns users whose username contains query as a
	// case-sensitive substring, excluding excludeUsername, ordered by
	// username ascending.
	Search(ctx context.Context, query, excludeUsername string) ([]*model.User, error)
}
