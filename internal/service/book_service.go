package service

import (
	"context"
	"errors"
	"strings"

	"booktracker/internal/models"
	"booktracker/internal/repository"
)

// BookService enforces per-user ownership over every book-store operation.
type BookService struct {
	books repository.Books
}

func NewBookService(books repository.Books) *BookService {
	return &BookService{books: books}
}

// List returns the caller's books, newest-created first.
func (s *BookService) List(ctx context.Context, userID string) ([]models.Book, error) {
	return s.books.ListByOwner(ctx, userID)
}

// Create validates and stores a new book owned by userID. Tags default to an
// empty sequence and status to "Want to Read".
func (s *BookService) Create(ctx context.Context, userID string, p CreateBookParams) (models.Book, error) {
	title := strings.TrimSpace(p.Title)
	author := strings.TrimSpace(p.Author)
	if title == "" || author == "" {
		return models.Book{}, ErrTitleAuthorRequired
	}

	status := p.Status
	if status == "" {
		status = models.StatusWantToRead
	}
	if !models.IsValidStatus(status) {
		return models.Book{}, ErrInvalidStatus
	}

	b := models.Book{
		Title:  title,
		Author: author,
		Tags:   trimTags(p.Tags),
		Status: status,
		UserID: userID, // owner always comes from the authenticated caller
	}
	if err := s.books.Insert(ctx, &b); err != nil {
		return models.Book{}, err
	}
	return b, nil
}

// Update applies the supplied fields to the caller's book. A book owned by a
// different user is indistinguishable from a missing one.
func (s *BookService) Update(ctx context.Context, userID, bookID string, p UpdateBookParams) (models.Book, error) {
	var upd repository.BookUpdate

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return models.Book{}, ErrTitleAuthorRequired
		}
		upd.Title = &title
	}
	if p.Author != nil {
		author := strings.TrimSpace(*p.Author)
		if author == "" {
			return models.Book{}, ErrTitleAuthorRequired
		}
		upd.Author = &author
	}
	if p.Tags != nil {
		tags := trimTags(*p.Tags)
		upd.Tags = &tags
	}
	if p.Status != nil {
		if !models.IsValidStatus(*p.Status) {
			return models.Book{}, ErrInvalidStatus
		}
		upd.Status = p.Status
	}

	b, err := s.books.Update(ctx, userID, bookID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Book{}, ErrBookNotFound
		}
		return models.Book{}, err
	}
	return b, nil
}

// Delete removes the caller's book, with the same ownership-scoped match
// semantics as Update.
func (s *BookService) Delete(ctx context.Context, userID, bookID string) error {
	if err := s.books.Delete(ctx, userID, bookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}

// trimTags trims each tag, keeping order and duplicates.
func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.TrimSpace(t))
	}
	return out
}
