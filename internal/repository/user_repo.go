package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"salestracker/internal/models"
)

// ErrDuplicateUsername is returned when an insert loses the uniqueness race.
// Callers must be able to distinguish this from an opaque store failure.
var ErrDuplicateUsername = errors.New("username already registered")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, role FROM users WHERE username = ?`
)

// Create inserts a new user and returns its ID. A UNIQUE violation on the
// username column surfaces as ErrDuplicateUsername so a race between an
// existence check and the insert still reads as a duplicate, not a failure.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, role models.Role) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash, string(role))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	var role string
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	u.Role = models.Role(role)
	return &u, nil
}

// isUniqueViolation matches the SQLite constraint error text. The driver
// does not expose a stable typed error for this across versions.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
