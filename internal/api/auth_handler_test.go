package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apimiddleware "github.com/bodasandeepsai/task-manager/internal/api/middleware"
	"github.com/bodasandeepsai/task-manager/internal/api/shared"
	"github.com/bodasandeepsai/task-manager/internal/config"
	"github.com/bodasandeepsai/task-manager/internal/domain"
	"github.com/bodasandeepsai/task-manager/internal/service/auth"
	"github.com/bodasandeepsai/task-manager/internal/store"
)

// memoryUserStore holds users keyed by lowercased email.
type memoryUserStore struct {
	byEmail map[string]*domain.User
}

func newMemoryUserStore(users ...*domain.User) *memoryUserStore {
	s := &memoryUserStore{byEmail: make(map[string]*domain.User)}
	for _, u := range users {
		s.byEmail[u.Email] = u
	}
	return s
}

func (s *memoryUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	for _, u := range s.byEmail {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	s.byEmail[user.Email] = user
	return nil
}

func (s *memoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *memoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, store.ErrUserNotFound
}

func (s *memoryUserStore) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	for _, u := range s.byEmail {
		users = append(users, u)
	}
	return users, nil
}

func (s *memoryUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthHandlerFixture(t *testing.T, users ...*domain.User) (*AuthHandler, *memoryUserStore) {
	t.Helper()

	userStore := newMemoryUserStore(users...)
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes: 1440,
	})
	require.NoError(t, err)

	// Run transactional work directly against the in-memory store.
	runTx := func(ctx context.Context, fn store.TxFn) error {
		return fn(ctx, nil)
	}

	handler := NewAuthHandler(
		runTx,
		userStore,
		jwtService,
		auth.NewBcryptHasher(),
		auth.NewBcryptVerifier(),
		config.AuthConfig{TokenLifetimeMinutes: 1440},
		config.ServerConfig{Env: "development"},
	)
	return handler, userStore
}

func findCookie(t *testing.T, recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	t.Parallel()

	existing := &domain.User{
		ID:             uuid.New(),
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "",
	}

	t.Run("valid credentials set the token cookie", func(t *testing.T) {
		t.Parallel()
		user := *existing
		user.HashedPassword = mustHash(t, "password123")
		handler, _ := newAuthHandlerFixture(t, &user)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"alice@example.com","password":"password123"}`))
		recorder := httptest.NewRecorder()
		handler.Login(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		cookie := findCookie(t, recorder, apimiddleware.TokenCookieName)
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, 1440*60, cookie.MaxAge)
		// Not Secure outside production
		assert.False(t, cookie.Secure)

		var body AuthResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "alice", body.User.Username)
	})

	t.Run("wrong password yields 401 without naming the cause", func(t *testing.T) {
		t.Parallel()
		user := *existing
		user.HashedPassword = mustHash(t, "password123")
		handler, _ := newAuthHandlerFixture(t, &user)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong-password"}`))
		recorder := httptest.NewRecorder()
		handler.Login(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Invalid email or password", body["error"])
	})

	t.Run("unknown email yields the same 401", func(t *testing.T) {
		t.Parallel()
		handler, _ := newAuthHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"nobody@example.com","password":"password123"}`))
		recorder := httptest.NewRecorder()
		handler.Login(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Invalid email or password", body["error"])
	})

	t.Run("missing fields yield 400", func(t *testing.T) {
		t.Parallel()
		handler, _ := newAuthHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"alice@example.com"}`))
		recorder := httptest.NewRecorder()
		handler.Login(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("valid registration stores the hash and sets the cookie", func(t *testing.T) {
		t.Parallel()
		handler, userStore := newAuthHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			bytes.NewBufferString(`{"username":"bob","email":"Bob@Example.com","password":"password123"}`))
		recorder := httptest.NewRecorder()
		handler.Register(recorder, req)

		require.Equal(t, http.StatusCreated, recorder.Code)

		cookie := findCookie(t, recorder, apimiddleware.TokenCookieName)
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)

		var body AuthResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Registration successful", body.Message)
		assert.Equal(t, "bob", body.User.Username)

		stored, ok := userStore.byEmail["bob@example.com"]
		require.True(t, ok, "user persisted under the normalised email")
		assert.Empty(t, stored.Password, "plaintext must never reach the store")
		require.NotEmpty(t, stored.HashedPassword)
		assert.NotEqual(t, "password123", stored.HashedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("password123")))
	})

	t.Run("duplicate email yields 400 naming the field", func(t *testing.T) {
		t.Parallel()
		existing := &domain.User{
			ID:       uuid.New(),
			Username: "alice",
			Email:    "alice@example.com",
		}
		handler, userStore := newAuthHandlerFixture(t, existing)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			bytes.NewBufferString(`{"username":"alice2","email":"alice@example.com","password":"password123"}`))
		recorder := httptest.NewRecorder()
		handler.Register(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Email already registered", body["error"])
		assert.Len(t, userStore.byEmail, 1)
	})

	t.Run("duplicate username yields 400 naming the field", func(t *testing.T) {
		t.Parallel()
		existing := &domain.User{
			ID:       uuid.New(),
			Username: "alice",
			Email:    "alice@example.com",
		}
		handler, userStore := newAuthHandlerFixture(t, existing)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			bytes.NewBufferString(`{"username":"alice","email":"other@example.com","password":"password123"}`))
		recorder := httptest.NewRecorder()
		handler.Register(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Username already taken", body["error"])
		assert.Len(t, userStore.byEmail, 1)
	})
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{"missing everything", `{}`},
		{"short password", `{"username":"alice","email":"alice@example.com","password":"short"}`},
		{"bad email", `{"username":"alice","email":"not-an-email","password":"password123"}`},
		{"short username", `{"username":"a","email":"alice@example.com","password":"password123"}`},
		{"malformed body", `{not json`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler, userStore := newAuthHandlerFixture(t)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
				bytes.NewBufferString(tt.payload))
			recorder := httptest.NewRecorder()
			handler.Register(recorder, req)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Empty(t, userStore.byEmail)
		})
	}
}

func TestMe(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthHandlerFixture(t)
	identity := auth.Identity{ID: uuid.New(), Email: "alice@example.com", Username: "alice"}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	ctx := context.WithValue(req.Context(), shared.IdentityContextKey, identity)
	recorder := httptest.NewRecorder()
	handler.Me(recorder, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]UserResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, identity.ID, body["user"].ID)
	assert.Equal(t, "alice", body["user"].Username)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	handler, _ := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	recorder := httptest.NewRecorder()
	handler.Logout(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	cookie := findCookie(t, recorder, apimiddleware.TokenCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
