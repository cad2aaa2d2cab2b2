package repository

import (
	"context"
	"database/sql"
	"errors"

	"booktracker/internal/models"
)

// ErrNotFound is returned by ownership-scoped mutations when no row matches
// both the record id and the owner. Callers cannot tell "absent" from
// "owned by someone else".
var ErrNotFound = errors.New("record not found")

type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// BookUpdate carries the subset of mutable Book fields present in an update.
// Nil fields are left untouched.
type BookUpdate struct {
	Title  *string
	Author *string
	Tags   *[]string
	Status *string
}

type Books interface {
	ListByOwner(ctx context.Context, userID string) ([]models.Book, error)
	Insert(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, userID, bookID string, upd BookUpdate) (models.Book, error)
	Delete(ctx context.Context, userID, bookID string) error
}

type Repository struct {
	Users Users
	Books Books
}

func NewRepository(dbConn *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(dbConn),
		Books: NewBookRepository(dbConn),
	}
}
