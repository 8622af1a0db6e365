package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kauestudy/revise-api/internal/domain"
	"github.com/kauestudy/revise-api/internal/service/auth"
	"github.com/kauestudy/revise-api/internal/store"
)

// stubHasher avoids bcrypt cost in handler tests.
type stubHasher struct {
	err error
}

func (s *stubHasher) Hash(password string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "hashed:" + password, nil
}

// stubVerifier accepts passwords matching the stubHasher scheme.
type stubVerifier struct{}

func (s *stubVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newAuthHandler(userStore *mockUserStore, jwt *auth.MockJWTService) *AuthHandler {
	return NewAuthHandler(userStore, jwt, &stubHasher{}, &stubVerifier{}, 60*time.Minute)
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		var created *domain.User
		userStore := &mockUserStore{
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				created = user
				return nil
			},
		}
		h := newAuthHandler(userStore, auth.NewMockJWTService())

		w := newRecorder()
		h.Register(w, postJSON("/api/auth/register", `{"email":"kaue@example.com","password":"correct-horse-battery"}`))

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, created)
		assert.Equal(t, "kaue@example.com", created.Email)
		assert.Equal(t, "hashed:correct-horse-battery", created.HashedPassword)
		assert.Empty(t, created.Password)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, created.ID, resp.UserID)
		assert.Equal(t, "mock-jwt-token", resp.AccessToken)
		assert.Equal(t, "mock-refresh-token", resp.RefreshToken)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userStore := &mockUserStore{
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				return store.ErrEmailExists
			},
		}
		h := newAuthHandler(userStore, auth.NewMockJWTService())

		w := newRecorder()
		h.Register(w, postJSON("/api/auth/register", `{"email":"kaue@example.com","password":"correct-horse-battery"}`))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Email already exists")
	})

	t.Run("short password rejected", func(t *testing.T) {
		h := newAuthHandler(&mockUserStore{}, auth.NewMockJWTService())

		w := newRecorder()
		h.Register(w, postJSON("/api/auth/register", `{"email":"kaue@example.com","password":"short"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := newAuthHandler(&mockUserStore{}, auth.NewMockJWTService())

		w := newRecorder()
		h.Register(w, postJSON("/api/auth/register", `{"email":`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	stored := &domain.User{
		ID:             userID,
		Email:          "kaue@example.com",
		HashedPassword: "hashed:correct-horse-battery",
	}

	t.Run("success", func(t *testing.T) {
		userStore := &mockUserStore{
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return stored, nil
			},
		}
		h := newAuthHandler(userStore, auth.NewMockJWTService())

		w := newRecorder()
		h.Login(w, postJSON("/api/auth/login", `{"email":"kaue@example.com","password":"correct-horse-battery"}`))

		require.Equal(t, http.StatusOK, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.UserID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		userStore := &mockUserStore{
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return stored, nil
			},
		}
		h := newAuthHandler(userStore, auth.NewMockJWTService())

		w := newRecorder()
		h.Login(w, postJSON("/api/auth/login", `{"email":"kaue@example.com","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("unknown email indistinguishable from wrong password", func(t *testing.T) {
		userStore := &mockUserStore{
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
		}
		h := newAuthHandler(userStore, auth.NewMockJWTService())

		w := newRecorder()
		h.Login(w, postJSON("/api/auth/login", `{"email":"nobody@example.com","password":"whatever"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})
}

func TestAuthHandlerRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		jwt := auth.NewMockJWTService()
		h := newAuthHandler(&mockUserStore{}, jwt)

		w := newRecorder()
		h.RefreshToken(w, postJSON("/api/auth/refresh", `{"refresh_token":"mock-refresh-token"}`))

		require.Equal(t, http.StatusOK, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, jwt.Claims.UserID, resp.UserID)
		assert.Equal(t, "mock-jwt-token", resp.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		jwt := auth.NewMockJWTService()
		jwt.ValidationError = auth.ErrInvalidRefreshToken
		h := newAuthHandler(&mockUserStore{}, jwt)

		w := newRecorder()
		h.RefreshToken(w, postJSON("/api/auth/refresh", `{"refresh_token":"garbage"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid refresh token")
	})

	t.Run("missing token", func(t *testing.T) {
		h := newAuthHandler(&mockUserStore{}, auth.NewMockJWTService())

		w := newRecorder()
		h.RefreshToken(w, postJSON("/api/auth/refresh", `{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
