package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodasandeepsai/task-manager/internal/config"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 1440,
	}
}

// newFixedClockService builds an HMAC service whose clock is pinned to
// the given time, so expiry behavior is deterministic.
func newFixedClockService(secret string, lifetime time.Duration, now time.Time) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      func() time.Time { return now },
		clockSkew:     2 * time.Minute,
	}
}

func testIdentity() Identity {
	return Identity{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Username: "alice",
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 24 * time.Hour
	identity := testIdentity()

	svc := newFixedClockService(testSecret, tokenLifetime, fixedTime)

	t.Run("generates valid token", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateToken(context.Background(), identity)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, identity.ID, claims.UserID)
		assert.Equal(t, identity.Email, claims.Email)
		assert.Equal(t, identity.Username, claims.Username)
		assert.Equal(t, identity.ID.String(), claims.Subject)
		// Compare Unix timestamps to avoid timezone issues
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("claims round-trip to the same identity", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateToken(context.Background(), identity)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, identity, claims.Identity())
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	wrongSecret := "wrong-secret-that-is-long-enough-for-testing"
	identity := testIdentity()

	tests := []struct {
		name      string
		setupFunc func() (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (JWTService, string) {
				svc := newFixedClockService(testSecret, tokenLifetime, fixedTime)
				token, _ := svc.GenerateToken(context.Background(), identity)
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func() (JWTService, string) {
				genSvc := newFixedClockService(testSecret, tokenLifetime, fixedTime)
				token, _ := genSvc.GenerateToken(context.Background(), identity)

				// Validate well past expiry plus clock skew
				valSvc := newFixedClockService(
					testSecret,
					tokenLifetime,
					fixedTime.Add(tokenLifetime+time.Hour),
				)
				return valSvc, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "expired token within clock skew is accepted",
			setupFunc: func() (JWTService, string) {
				genSvc := newFixedClockService(testSecret, tokenLifetime, fixedTime)
				token, _ := genSvc.GenerateToken(context.Background(), identity)

				valSvc := newFixedClockService(
					testSecret,
					tokenLifetime,
					fixedTime.Add(tokenLifetime+time.Minute),
				)
				return valSvc, token
			},
			wantErr: nil,
		},
		{
			name: "invalid signature",
			setupFunc: func() (JWTService, string) {
				genSvc := newFixedClockService(wrongSecret, tokenLifetime, fixedTime)
				token, _ := genSvc.GenerateToken(context.Background(), identity)

				valSvc := newFixedClockService(testSecret, tokenLifetime, fixedTime)
				return valSvc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (JWTService, string) {
				svc := newFixedClockService(testSecret, tokenLifetime, fixedTime)
				return svc, "not.a.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "tampered token",
			setupFunc: func() (JWTService, string) {
				svc := newFixedClockService(testSecret, tokenLifetime, fixedTime)
				token, _ := svc.GenerateToken(context.Background(), identity)
				return svc, token + "x"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func() (JWTService, string) {
				svc := newFixedClockService(testSecret, tokenLifetime, fixedTime)
				return svc, ""
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc()

			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, claims)
			assert.Equal(t, identity.ID, claims.UserID)
		})
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()
		_, err := NewJWTService(testAuthConfig("too-short"))
		require.Error(t, err)
	})

	t.Run("accepts sufficiently long secret", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(testAuthConfig(testSecret))
		require.NoError(t, err)
		require.NotNil(t, svc)
	})
}
