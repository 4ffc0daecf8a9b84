package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/formchat/backend/internal/model"
)

// SqliteUserRepository is the SQLite implementation of UserRepository.
type SqliteUserRepository struct {
	db *sql.DB
}

// NewSqliteUserRepository creates a SqliteUserRepository backed by db.
func NewSqliteUserRepository(db *sql.DB) *SqliteUserRepository {
	return &SqliteUserRepository{db: db}
}

// Ensure SqliteUserRepository implements UserRepository at compile time.
var _ UserRepository = (*SqliteUserRepository)(nil)

// Ping checks database connectivity (DB interface).
func (r *SqliteUserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const userSelectCols = `id, username, email, gender, password_hash`

func scanUser(scan func(...any) error) (*model.User, error) {
	var u model.User
	if err := scan(&u.ID, &u.Username, &u.Email, &u.Gender, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and populates user.ID.
// A duplicate username surfaces as ErrConflict via the unique index.
func (r *SqliteUserRepository) Create(ctx context.Context, user *model.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, gender, password_hash) VALUES (?, ?, ?, ?)`,
		user.Username, user.Email, user.Gender, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// FindByUsername returns the user with the given username.
func (r *SqliteUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE username = ?`, username)
	return scanUser(row.Scan)
}

// FindByEmail returns the user with the given email.
func (r *SqliteUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE email = ?`, email)
	return scanUser(row.Scan)
}

// FindByID returns the user with the given id.
func (r *SqliteUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE id = ?`, id)
	return scanUser(row.Scan)
}

// FindByIDs returns the users whose ids appear in ids, in a single query.
func (r *SqliteUserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Search returns users whose username contains query as a case-sensitive
// substring, excluding excludeUsername, ordered by username ascending.
// instr() is used instead of LIKE because SQLite LIKE folds ASCII case.
func (r *SqliteUserRepository) Search(ctx context.Context, query, excludeUsername string) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userSelectCols+` FROM users
		 WHERE instr(username, ?) > 0 AND username <> ?
		 ORDER BY username ASC`,
		query, excludeUsername)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
