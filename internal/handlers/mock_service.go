package handlers

import (
	"context"
	"errors"
	"net/http"

	"booktracker/internal/models"
	"booktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// errDBDown stands in for an unexpected store failure in handler tests.
var errDBDown = errors.New("db down")

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser *models.User
	signUpTok  string
	signUpErr  error

	signInUser *models.User
	signInTok  string
	signInErr  error

	authUserID string
	authErr    error

	lastSignUp   [3]string // name, email, password
	lastSignIn   [2]string // email, password
	lastAuthTok  string
	authCalls    int
}

func (m *mockAuth) SignUp(_ context.Context, name, email, password string) (*models.User, string, error) {
	m.lastSignUp = [3]string{name, email, password}
	return m.signUpUser, m.signUpTok, m.signUpErr
}

func (m *mockAuth) SignIn(_ context.Context, email, password string) (*models.User, string, error) {
	m.lastSignIn = [2]string{email, password}
	return m.signInUser, m.signInTok, m.signInErr
}

func (m *mockAuth) Authenticate(_ context.Context, accessToken string) (string, error) {
	m.authCalls++
	m.lastAuthTok = accessToken
	return m.authUserID, m.authErr
}

type mockBooks struct {
	listResp  []models.Book
	listErr   error
	createB   models.Book
	createErr error
	updateB   models.Book
	updateErr error
	deleteErr error

	lastListUser   string
	lastCreateUser string
	lastCreate     service.CreateBookParams
	lastUpdateUser string
	lastUpdateBook string
	lastUpdate     service.UpdateBookParams
	lastDeleteUser string
	lastDeleteBook string
}

func (m *mockBooks) List(_ context.Context, userID string) ([]models.Book, error) {
	m.lastListUser = userID
	return m.listResp, m.listErr
}

func (m *mockBooks) Create(_ context.Context, userID string, p service.CreateBookParams) (models.Book, error) {
	m.lastCreateUser = userID
	m.lastCreate = p
	return m.createB, m.createErr
}

func (m *mockBooks) Update(_ context.Context, userID, bookID string, p service.UpdateBookParams) (models.Book, error) {
	m.lastUpdateUser = userID
	m.lastUpdateBook = bookID
	m.lastUpdate = p
	return m.updateB, m.updateErr
}

func (m *mockBooks) Delete(_ context.Context, userID, bookID string) error {
	m.lastDeleteUser = userID
	m.lastDeleteBook = bookID
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Config{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
