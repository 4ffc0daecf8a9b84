package repository

import (
	"context"
	"database/sql"

	"github.com/formchat/backend/internal/model"
)

// DirectMessageRepository defines the persistence interface for direct
// messages between registered users.
type DirectMessageRepository interface {
	// Create inserts a new direct message and populates msg.ID.
	// msg.CreatedAt must already be set by the caller.
	Create(ctx context.Context, msg *model.DirectMessage) error
	// ListBetween returns every message exchanged between users a and b,
	// in either direction, ordered by created_at ascending.
	ListBetween(ctx context.Context, a, b int64) ([]*model.DirectMessage, error)
	// ListInvolving returns every message where userID is sender or
	// receiver, ordered by created_at descending. The conversation
	// aggregation relies on this ordering.
	ListInvolving(ctx context.Context, userID int64) ([]*model.DirectMessage, error)
}

// SqliteDirectMessageRepository is the SQLite implementation of DirectMessageRepository.
type SqliteDirectMessageRepository struct {
	db *sql.DB
}

// NewSqliteDirectMessageRepository creates a SqliteDirectMessageRepository backed by db.
func NewSqliteDirectMessageRepository(db *sql.DB) *SqliteDirectMessageRepository {
	return &SqliteDirectMessageRepository{db: db}
}

// Ensure SqliteDirectMessageRepository implements DirectMessageRepository at compile time.
var _ DirectMessageRepository = (*SqliteDirectMessageRepository)(nil)

const directMessageSelectCols = `id, sender_id, receiver_id, content, created_at`

func scanDirectMessage(scan func(...any) error) (*model.DirectMessage, error) {
	var m model.DirectMessage
	var createdAt int64
	if err := scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &createdAt); err != nil {
		return nil, err
	}
	m.CreatedAt = fromMillis(createdAt)
	return &m, nil
}

// Create inserts a new direct_messages row and populates msg.ID.
func (r *SqliteDirectMessageRepository) Create(ctx context.Context, msg *model.DirectMessage) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO direct_messages (sender_id, receiver_id, content, created_at)
		 VALUES (?, ?, ?, ?)`,
		msg.SenderID, msg.ReceiverID, msg.Content, toMillis(msg.CreatedAt))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	msg.ID = id
	return nil
}

// ListBetween returns the thread between a and b in chronological order.
func (r *SqliteDirectMessageRepository) ListBetween(ctx context.Context, a, b int64) ([]*model.DirectMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+directMessageSelectCols+` FROM direct_messages
		 WHERE (sender_id = ?1 AND receiver_id = ?2)
		    OR (sender_id = ?2 AND receiver_id = ?1)
		 ORDER BY created_at ASC, id ASC`,
		a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDirectMessages(rows)
}

// ListInvolving returns all messages touching userID, most recent first.
func (r *SqliteDirectMessageRepository) ListInvolving(ctx context.Context, userID int64) ([]*model.DirectMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+directMessageSelectCols+` FROM direct_messages
		 WHERE sender_id = ?1 OR receiver_id = ?1
		 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDirectMessages(rows)
}

func collectDirectMessages(rows *sql.Rows) ([]*model.DirectMessage, error) {
	var messages []*model.DirectMessage
	for rows.Next() {
		m, err := scanDirectMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
