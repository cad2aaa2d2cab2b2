package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"booktracker/internal/models"

	"github.com/google/uuid"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`

	selectUserByEmailSQL = `SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`
)

// Create inserts a new user. Fills ID and CreatedAt when unset.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	} else {
		u.CreatedAt = u.CreatedAt.UTC()
	}

	if _, err := r.db.ExecContext(ctx, insertUserSQL, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt); err != nil {
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
// Email comparison is case-sensitive, as stored.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.getOne(ctx, selectUserByEmailSQL, email)
	if err != nil {
		return nil, fmt.Errorf("select user by email %q: %w", email, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := r.getOne(ctx, selectUserByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) getOne(ctx context.Context, query, arg string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
