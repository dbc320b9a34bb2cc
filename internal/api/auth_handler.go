package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	apimiddleware "github.com/bodasandeepsai/task-manager/internal/api/middleware"
	"github.com/bodasandeepsai/task-manager/internal/api/shared"
	"github.com/bodasandeepsai/task-manager/internal/config"
	"github.com/bodasandeepsai/task-manager/internal/domain"
	"github.com/bodasandeepsai/task-manager/internal/service/auth"
	"github.com/bodasandeepsai/task-manager/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	runTx            store.TxRunner
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate

	cookieMaxAge int
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	runTx store.TxRunner,
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
	authCfg config.AuthConfig,
	serverCfg config.ServerConfig,
) *AuthHandler {
	return &AuthHandler{
		runTx:            runTx,
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		cookieMaxAge:     authCfg.TokenLifetimeMinutes * 60,
		cookieSecure:     serverCfg.Env == "production",
	}
}

// Register handles the /api/auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid user data")
		return
	}

	// Hash before any persistence; the plaintext never reaches the store.
	hashed, err := h.passwordHasher.Hash(user.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Registration failed")
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = h.runTx(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		return h.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) || errors.Is(err, store.ErrUsernameExists) {
			HandleAPIError(w, r, err, "")
			return
		}
		slog.Error("failed to create user", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Registration failed")
		return
	}

	h.issueToken(w, r, user, http.StatusCreated, "Registration successful")
}

// Login handles the /api/auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		slog.Error("failed to get user by email", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.issueToken(w, r, user, http.StatusOK, "Login successful")
}

// Me handles the /api/auth/me endpoint: it echoes the identity carried
// by the caller's token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]UserResponse{
		"user": {
			ID:       identity.ID,
			Username: identity.Username,
			Email:    identity.Email,
		},
	})
}

// Logout handles the /api/auth/logout endpoint by expiring the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     apimiddleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Logged out"})
}

// issueToken signs a token for the user, sets the auth cookie and writes
// the success response.
func (h *AuthHandler) issueToken(
	w http.ResponseWriter,
	r *http.Request,
	user *domain.User,
	status int,
	message string,
) {
	token, err := h.jwtService.GenerateToken(r.Context(), auth.Identity{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     apimiddleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cookieMaxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	shared.RespondWithJSON(w, r, status, AuthResponse{
		User:    newUserResponse(user),
		Message: message,
	})
}
