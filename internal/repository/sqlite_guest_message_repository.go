package repository

import (
	"context"
	"database/sql"

	"github.com/formchat/backend/internal/model"
)

// GuestMessageRepository defines the persistence interface for contact-form
// submissions. It is defined here (in repository) to avoid an import cycle
// with service.
type GuestMessageRepository interface {
	// Create inserts a new guest message and returns its id.
	Create(ctx context.Context, name, email, gender, message string) (int64, error)
	// List returns all guest messages ordered by id ascending.
	List(ctx context.Context) ([]*model.GuestMessage, error)
	// Delete removes one guest message. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id int64) error
}

// SqliteGuestMessageRepository is the SQLite implementation of GuestMessageRepository.
type SqliteGuestMessageRepository struct {
	db *sql.DB
}

// NewSqliteGuestMessageRepository creates a SqliteGuestMessageRepository backed by db.
func NewSqliteGuestMessageRepository(db *sql.DB) *SqliteGuestMessageRepository {
	return &SqliteGuestMessageRepository{db: db}
}

// Ensure SqliteGuestMessageRepository implements GuestMessageRepository at compile time.
var _ GuestMessageRepository = (*SqliteGuestMessageRepository)(nil)

// Create inserts a new guest_messages row and returns its id.
func (r *SqliteGuestMessageRepository) Create(ctx context.Context, name, email, gender, message string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO guest_messages (name, email, gender, message) VALUES (?, ?, ?, ?)`,
		name, email, gender, message)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns all guest messages ordered by id ascending.
func (r *SqliteGuestMessageRepository) List(ctx context.Context) ([]*model.GuestMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, gender, message FROM guest_messages ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.GuestMessage
	for rows.Next() {
		var m model.GuestMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Gender, &m.Message); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// Delete removes one guest message by id.
func (r *SqliteGuestMessageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guest_messages WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
