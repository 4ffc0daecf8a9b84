package service

import (
	"context"

	"github.com/formchat/backend/internal/model"
)

// GuestMessageService defines the business logic for the public contact
// form and its admin view.
type GuestMessageService interface {
	// SubmitAnonymous stores a contact-form submission from an anonymous
	// visitor.
	SubmitAnonymous(ctx context.Context, name, email, gender, message string) (int64, error)

	// SubmitAsUser stores a submission attributed to a logged-in user.
	// The user's username, email and gender are copied into the row as a
	// snapshot of the profile at submission time. Returns
	// repository.ErrNotFound when the username no longer resolves.
	SubmitAsUser(ctx context.Context, username, message string) (int64, error)

	// List returns all guest messages ordered by id ascending.
	List(ctx context.Context) ([]*model.GuestMessage, error)

	// Delete removes one guest message. Returns repository.ErrNotFound
	// when absent.
	Delete(ctx context.Context, id int64) error
}
