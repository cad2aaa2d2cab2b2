package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"booktracker/internal/models"

	"github.com/google/uuid"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

var _ Books = (*BookRepository)(nil)

const (
	insertBookSQL = `INSERT INTO books (id, user_id, title, author, tags, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectBooksByOwnerSQL = `SELECT id, user_id, title, author, tags, status, created_at, updated_at FROM books WHERE user_id = ? ORDER BY created_at DESC`
	selectBookByOwnerSQL  = `SELECT id, user_id, title, author, tags, status, created_at, updated_at FROM books WHERE id = ? AND user_id = ?`

	deleteBookSQL = `DELETE FROM books WHERE id = ? AND user_id = ?`
)

// marshalTags converts the slice to a JSON string for the tags column.
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalTags parses the tags column; never returns a nil slice.
func unmarshalTags(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// Insert stores a new book. Fills ID and timestamps when unset.
func (r *BookRepository) Insert(ctx context.Context, b *models.Book) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	} else {
		b.CreatedAt = b.CreatedAt.UTC()
	}
	b.UpdatedAt = b.CreatedAt

	tagsJSON, err := marshalTags(b.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags for book %q: %w", b.Title, err)
	}

	if _, err := r.db.ExecContext(ctx, insertBookSQL,
		b.ID, b.UserID, b.Title, b.Author, tagsJSON, b.Status, b.CreatedAt, b.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert book %q: %w", b.Title, err)
	}
	return nil
}

// ListByOwner returns the owner's books, newest-created first.
func (r *BookRepository) ListByOwner(ctx context.Context, userID string) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, selectBooksByOwnerSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select books for user %q: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Book, 0, 16)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}
	return out, nil
}

// Update applies the non-nil fields of upd to the row matching both bookID and
// userID in a single statement, so the ownership check and the mutation cannot
// be interleaved with another request. Returns ErrNotFound when no row matches.
func (r *BookRepository) Update(ctx context.Context, userID, bookID string, upd BookUpdate) (models.Book, error) {
	var (
		sets []string
		args []any
	)
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, *upd.Author)
	}
	if upd.Tags != nil {
		tagsJSON, err := marshalTags(*upd.Tags)
		if err != nil {
			return models.Book{}, fmt.Errorf("marshal tags for book %q: %w", bookID, err)
		}
		sets = append(sets, "tags = ?")
		args = append(args, tagsJSON)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())

	q := "UPDATE books SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"
	args = append(args, bookID, userID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return models.Book{}, fmt.Errorf("update book %q: %w", bookID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Book{}, fmt.Errorf("rows affected for book %q: %w", bookID, err)
	}
	if n == 0 {
		return models.Book{}, ErrNotFound
	}

	return r.getByOwner(ctx, userID, bookID)
}

// Delete removes the row matching both bookID and userID in a single
// statement. Returns ErrNotFound when no row matches.
func (r *BookRepository) Delete(ctx context.Context, userID, bookID string) error {
	res, err := r.db.ExecContext(ctx, deleteBookSQL, bookID, userID)
	if err != nil {
		return fmt.Errorf("delete book %q: %w", bookID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for book %q: %w", bookID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookRepository) getByOwner(ctx context.Context, userID, bookID string) (models.Book, error) {
	row := r.db.QueryRowContext(ctx, selectBookByOwnerSQL, bookID, userID)
	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, ErrNotFound
		}
		return models.Book{}, fmt.Errorf("select book %q: %w", bookID, err)
	}
	return b, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (models.Book, error) {
	var (
		b        models.Book
		tagsJSON string
	)
	if err := s.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &tagsJSON, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return models.Book{}, err
	}
	tags, err := unmarshalTags(tagsJSON)
	if err != nil {
		return models.Book{}, err
	}
	b.Tags = tags
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}
