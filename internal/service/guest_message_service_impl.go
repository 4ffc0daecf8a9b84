package service

import (
	"context"
	"fmt"

	"github.com/formchat/backend/internal/model"
	"github.com/formchat/backend/internal/repository"
)

// guestMessageServiceImpl is the production implementation of GuestMessageService.
type guestMessageServiceImpl struct {
	guestMessages repository.GuestMessageRepository
	users         repository.UserRepository
}

// NewGuestMessageService creates a GuestMessageService backed by the given
// repositories.
func NewGuestMessageService(guestMessages repository.GuestMessageRepository, users repository.UserRepository) GuestMessageService {
	return &guestMessageServiceImpl{guestMessages: guestMessages, users: users}
}

// SubmitAnonymous stores a contact-form submission as given.
func (s *guestMessageServiceImpl) SubmitAnonymous(ctx context.Context, name, email, gender, message string) (int64, error) {
	return s.guestMessages.Create(ctx, name, email, gender, message)
}

// SubmitAsUser stores a submission under a snapshot of the user's profile.
// The copied fields are intentionally denormalized: the row keeps the
// profile as it was at submission time.
func (s *guestMessageServiceImpl) SubmitAsUser(ctx context.Context, username, message string) (int64, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("resolve user: %w", err)
	}
	return s.guestMessages.Create(ctx, user.Username, user.Email, user.Gender, message)
}

// List returns all guest messages ordered by id ascending.
func (s *guestMessageServiceImpl) List(ctx context.Context) ([]*model.GuestMessage, error) {
	return s.guestMessages.List(ctx)
}

// Delete removes one guest message by id.
func (s *guestMessageServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.guestMessages.Delete(ctx, id)
}
