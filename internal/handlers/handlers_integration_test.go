package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"booktracker/internal/handlers"
	"booktracker/internal/repository"
	"booktracker/internal/repository/db"
	"booktracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "integration-test-secret"

// setupRouter builds the full stack over a throwaway SQLite file.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "sqlite init")
	t.Cleanup(func() { _ = conn.Close() })

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Config{SigningKey: testSigningKey})
	h := handlers.NewHandler(services, nil, handlers.Config{})
	return h.InitRoutes()
}

func do(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func signup(t *testing.T, r http.Handler, name, email, password string) (token, userID string) {
	t.Helper()
	w := do(r, http.MethodPost, "/api/auth/signup",
		`{"name":"`+name+`","email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, "signup body: %s", w.Body.String())

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.User.ID)
	return resp.Token, resp.User.ID
}

func TestIntegration_SignupLoginRoundTrip(t *testing.T) {
	r := setupRouter(t)

	token, userID := signup(t, r, "Ann", "ann@x.com", "secret1")
	assert.NotEmpty(t, token)

	// duplicate email always conflicts, regardless of password
	w := do(r, http.MethodPost, "/api/auth/signup", `{"name":"Ann2","email":"ann@x.com","password":"different9"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")

	// login succeeds and returns the same user id
	w = do(r, http.MethodPost, "/api/auth/login", `{"email":"ann@x.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code, "login body: %s", w.Body.String())
	var login struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, userID, login.User.ID)
}

func TestIntegration_LoginFailuresAreIndistinguishable(t *testing.T) {
	r := setupRouter(t)
	signup(t, r, "Ann", "ann@x.com", "secret1")

	wWrongPw := do(r, http.MethodPost, "/api/auth/login", `{"email":"ann@x.com","password":"wrong99"}`, "")
	wNoUser := do(r, http.MethodPost, "/api/auth/login", `{"email":"ghost@x.com","password":"wrong99"}`, "")

	assert.Equal(t, http.StatusBadRequest, wWrongPw.Code)
	assert.Equal(t, http.StatusBadRequest, wNoUser.Code)
	// identical body for both failure modes
	assert.JSONEq(t, wWrongPw.Body.String(), wNoUser.Body.String())
	assert.Contains(t, wWrongPw.Body.String(), "Invalid credentials")
}

func TestIntegration_BookDefaultsAndListRoundTrip(t *testing.T) {
	r := setupRouter(t)
	token, userID := signup(t, r, "Ann", "ann@x.com", "secret1")

	w := do(r, http.MethodPost, "/api/books", `{"title":"Dune","author":"Herbert"}`, token)
	require.Equal(t, http.StatusCreated, w.Code, "create body: %s", w.Body.String())

	w = do(r, http.MethodGet, "/api/books", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var books []struct {
		Title  string   `json:"title"`
		Author string   `json:"author"`
		Tags   []string `json:"tags"`
		Status string   `json:"status"`
		UserID string   `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Herbert", books[0].Author)
	assert.Equal(t, []string{}, books[0].Tags)
	assert.Equal(t, "Want to Read", books[0].Status)
	assert.Equal(t, userID, books[0].UserID)
}

func TestIntegration_ListOrdersNewestFirst(t *testing.T) {
	r := setupRouter(t)
	token, _ := signup(t, r, "Ann", "ann@x.com", "secret1")

	for _, title := range []string{"First", "Second", "Third"} {
		w := do(r, http.MethodPost, "/api/books", `{"title":"`+title+`","author":"A"}`, token)
		require.Equal(t, http.StatusCreated, w.Code)
		time.Sleep(5 * time.Millisecond) // distinct creation instants
	}

	w := do(r, http.MethodGet, "/api/books", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var books []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	require.Len(t, books, 3)
	assert.Equal(t, "Third", books[0].Title)
	assert.Equal(t, "Second", books[1].Title)
	assert.Equal(t, "First", books[2].Title)
}

// The end-to-end ownership scenario: a second user can neither see nor touch
// the first user's book, and failed cross-user mutations change nothing.
func TestIntegration_OwnershipIsolation(t *testing.T) {
	r := setupRouter(t)
	annToken, _ := signup(t, r, "Ann", "ann@x.com", "secret1")
	bobToken, _ := signup(t, r, "Bob", "bob@x.com", "secret2")

	w := do(r, http.MethodPost, "/api/books", `{"title":"1984","author":"Orwell","status":"Reading"}`, annToken)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Reading", created.Status)

	// Bob sees an empty shelf
	w = do(r, http.MethodGet, "/api/books", "", bobToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", string(bytes.TrimSpace(w.Body.Bytes())))

	// Bob cannot update or delete Ann's book; both read as not-found
	w = do(r, http.MethodPut, "/api/books/"+created.ID, `{"status":"Completed"}`, bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodDelete, "/api/books/"+created.ID, "", bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Ann's book is untouched by the failed attempts
	w = do(r, http.MethodGet, "/api/books", "", annToken)
	require.Equal(t, http.StatusOK, w.Code)
	var books []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Reading", books[0].Status)

	// Ann deletes it for real
	w = do(r, http.MethodDelete, "/api/books/"+created.ID, "", annToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Book deleted successfully")

	w = do(r, http.MethodGet, "/api/books", "", annToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	assert.Empty(t, books)
}

func TestIntegration_UpdatePartialFields(t *testing.T) {
	r := setupRouter(t)
	token, _ := signup(t, r, "Ann", "ann@x.com", "secret1")

	w := do(r, http.MethodPost, "/api/books", `{"title":"Dune","author":"Herbert","tags":["sf"]}`, token)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// status-only update leaves everything else alone
	w = do(r, http.MethodPut, "/api/books/"+created.ID, `{"status":"Completed"}`, token)
	require.Equal(t, http.StatusOK, w.Code, "update body: %s", w.Body.String())

	var updated struct {
		Title  string   `json:"title"`
		Author string   `json:"author"`
		Tags   []string `json:"tags"`
		Status string   `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "Herbert", updated.Author)
	assert.Equal(t, []string{"sf"}, updated.Tags)
	assert.Equal(t, "Completed", updated.Status)

	// unknown status is rejected before persisting
	w = do(r, http.MethodPut, "/api/books/"+created.ID, `{"status":"Abandoned"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntegration_UnauthenticatedAccess(t *testing.T) {
	r := setupRouter(t)

	for _, rt := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/books"},
		{http.MethodPost, "/api/books"},
		{http.MethodPut, "/api/books/some-id"},
		{http.MethodDelete, "/api/books/some-id"},
	} {
		w := do(r, rt.method, rt.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
	}
}

func TestIntegration_ExpiredTokenRejected(t *testing.T) {
	r := setupRouter(t)
	_, userID := signup(t, r, "Ann", "ann@x.com", "secret1")

	// token for a real user, signed with the right key, but already expired
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
		UserID: userID,
	})
	expiredToken, err := expired.SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/api/books", "", expiredToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}
