package service

import (
	"context"
	"time"

	"booktracker/internal/models"
	"booktracker/internal/repository"
)

// Authorization owns identity creation, credential verification and
// session-token issuance/verification.
type Authorization interface {
	SignUp(ctx context.Context, name, email, password string) (*models.User, string, error)
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	// Authenticate verifies a bearer token and confirms the embedded user
	// still exists. Returns the owner id every protected operation must use.
	Authenticate(ctx context.Context, accessToken string) (string, error)
}

// CreateBookParams is the caller-supplied portion of a new book. The owner is
// never part of it; it always comes from the authenticated caller.
type CreateBookParams struct {
	Title  string
	Author string
	Tags   []string
	Status string
}

// UpdateBookParams carries the subset of fields present in an update request.
// Nil fields are left untouched.
type UpdateBookParams struct {
	Title  *string
	Author *string
	Tags   *[]string
	Status *string
}

// Books scopes every book-store operation to the verified owner.
type Books interface {
	List(ctx context.Context, userID string) ([]models.Book, error)
	Create(ctx context.Context, userID string, p CreateBookParams) (models.Book, error)
	Update(ctx context.Context, userID, bookID string, p UpdateBookParams) (models.Book, error)
	Delete(ctx context.Context, userID, bookID string) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Books
}

// Config carries the auth knobs read from configuration at startup.
type Config struct {
	SigningKey string
	TokenTTL   time.Duration
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg),
		Books:         NewBookService(repos.Books),
	}
}
