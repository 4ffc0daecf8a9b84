package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/formchat/backend/internal/model"
	"github.com/formchat/backend/internal/repository"
)

// messageServiceImpl is the production implementation of MessageService.
type messageServiceImpl struct {
	messages repository.DirectMessageRepository
	users    repository.UserRepository
}

// NewMessageService creates a MessageService backed by the given repositories.
func NewMessageService(messages repository.DirectMessageRepository, users repository.UserRepository) MessageService {
	return &messageServiceImpl{messages: messages, users: users}
}

// Contacts builds the conversation list for a user.
//
// The repository returns messages descending by created_at, so a single
// forward pass with first-write-wins per counterpart retains exactly the
// most recent message of each conversation. Counterparts are then resolved
// in one bulk lookup; ids that fail to resolve are skipped rather than
// failing the whole aggregation.
func (s *messageServiceImpl) Contacts(ctx context.Context, meUsername string) ([]*model.Contact, error) {
	me, err := s.users.FindByUsername(ctx, meUsername)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	msgs, err := s.messages.ListInvolving(ctx, me.ID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	latest := make(map[int64]*model.DirectMessage, len(msgs))
	for _, m := range msgs {
		counterpartID := m.SenderID
		if m.SenderID == me.ID {
			counterpartID = m.ReceiverID
		}
		if _, seen := latest[counterpartID]; !seen {
			latest[counterpartID] = m
		}
	}
	if len(latest) == 0 {
		return nil, nil
	}

	counterparts, err := s.users.FindByIDs(ctx, lo.Keys(latest))
	if err != nil {
		return nil, fmt.Errorf("resolve counterparts: %w", err)
	}

	contacts := make([]*model.Contact, 0, len(counterparts))
	for _, u := range counterparts {
		m := latest[u.ID]
		contacts = append(contacts, &model.Contact{
			User:     u,
			Preview:  m.Content,
			LastTime: m.CreatedAt,
			FromMe:   m.SenderID == me.ID,
		})
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].LastTime.After(contacts[j].LastTime)
	})
	return contacts, nil
}

// Thread returns the chronological conversation with otherUsername.
func (s *messageServiceImpl) Thread(ctx context.Context, meUsername, otherUsername string) (*model.User, []*model.DirectMessage, error) {
	me, other, err := s.resolvePair(ctx, meUsername, otherUsername)
	if err != nil {
		return nil, nil, err
	}

	msgs, err := s.messages.ListBetween(ctx, me.ID, other.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list thread: %w", err)
	}
	return other, msgs, nil
}

// Send appends a message to the thread with otherUsername.
func (s *messageServiceImpl) Send(ctx context.Context, meUsername, otherUsername, content string) (bool, error) {
	me, other, err := s.resolvePair(ctx, meUsername, otherUsername)
	if err != nil {
		return false, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return false, nil
	}

	msg := &model.DirectMessage{
		SenderID:   me.ID,
		ReceiverID: other.ID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return false, fmt.Errorf("create message: %w", err)
	}
	return true, nil
}

// Search returns matching users, excluding the caller.
func (s *messageServiceImpl) Search(ctx context.Context, query, meUsername string) ([]*model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.users.Search(ctx, query, meUsername)
}

// resolvePair resolves both participants of a thread. A target that does
// not exist or is the caller itself yields repository.ErrNotFound: there
// is no self-thread.
func (s *messageServiceImpl) resolvePair(ctx context.Context, meUsername, otherUsername string) (*model.User, *model.User, error) {
	me, err := s.users.FindByUsername(ctx, meUsername)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve user: %w", err)
	}
	if otherUsername == me.Username {
		return nil, nil, repository.ErrNotFound
	}
	other, err := s.users.FindByUsername(ctx, otherUsername)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve counterpart: %w", err)
	}
	return me, other, nil
}
