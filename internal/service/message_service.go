package service

import (
	"context"

	"github.com/formchat/backend/internal/model"
)

// MessageService defines the business logic for direct messaging: the
// per-user conversation list, thread retrieval, sending, and user search.
// Callers identify the current user by username as carried in the session.
type MessageService interface {
	// Contacts returns one entry per distinct counterpart the user has
	// exchanged messages with, each holding the most recent message,
	// ordered by that message's time descending.
	Contacts(ctx context.Context, meUsername string) ([]*model.Contact, error)

	// Thread returns the counterpart user and the chronological message
	// sequence between the two. Returns repository.ErrNotFound when
	// otherUsername does not resolve or resolves to the caller.
	Thread(ctx context.Context, meUsername, otherUsername string) (*model.User, []*model.DirectMessage, error)

	// Send appends a message to the thread. Empty or whitespace-only
	// content is dropped silently: created is false and err is nil.
	// Returns repository.ErrNotFound for an unknown or self target.
	Send(ctx context.Context, meUsername, otherUsername, content string) (created bool, err error)

	// Search returns users whose username contains query as a
	// case-sensitive substring, excluding the caller, ordered by username
	// ascending. An empty or whitespace-only query yields no results.
	Search(ctx context.Context, query, meUsername string) ([]*model.User, error)
}
