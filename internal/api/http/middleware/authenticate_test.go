package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/blogapi/internal/api/http/context"
	"github.com/dtroode/blogapi/internal/model"
	"github.com/dtroode/blogapi/internal/testutil"
)

// MockTokenParser mocks the TokenParser interface
type MockTokenParser struct {
	mock.Mock
}

func (m *MockTokenParser) ParseSessionToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByResetTokenHash(ctx context.Context, hash string) (model.User, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) SetResetToken(ctx context.Context, id uuid.UUID, hash string, expiresAt time.Time) error {
	args := m.Called(ctx, id, hash, expiresAt)
	return args.Error(0)
}

func (m *MockUserStore) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAuthenticate_Handle(t *testing.T) {
	userID := uuid.New()
	stored := model.User{ID: userID, Username: "alice@example.com", Role: model.RoleUser}
	ctxMgr := httpctx.NewManager()

	newHandler := func(t *testing.T) (http.Handler, *MockTokenParser, *MockUserStore) {
		t.Helper()
		parser := &MockTokenParser{}
		userStore := &MockUserStore{}
		mw := NewAuthenticate(parser, userStore, ctxMgr, testutil.MakeNoopLogger())

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := ctxMgr.GetUserFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, userID, user.ID)
			w.WriteHeader(http.StatusOK)
		})

		return mw.Handle(next), parser, userStore
	}

	t.Run("bearer header", func(t *testing.T) {
		h, parser, userStore := newHandler(t)
		parser.On("ParseSessionToken", "valid-token").Return(userID, nil)
		userStore.On("GetByID", mock.Anything, userID).Return(stored, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		h, parser, userStore := newHandler(t)
		parser.On("ParseSessionToken", "cookie-token").Return(userID, nil)
		userStore.On("GetByID", mock.Anything, userID).Return(stored, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		h, parser, userStore := newHandler(t)
		parser.On("ParseSessionToken", "header-token").Return(userID, nil)
		userStore.On("GetByID", mock.Anything, userID).Return(stored, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		parser.AssertNotCalled(t, "ParseSessionToken", "cookie-token")
	})

	t.Run("missing token", func(t *testing.T) {
		h, _, _ := newHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), notAuthorizedMessage)
	})

	t.Run("invalid token", func(t *testing.T) {
		h, parser, _ := newHandler(t)
		parser.On("ParseSessionToken", "garbage").Return(uuid.Nil, errors.New("bad token"))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deleted user fails closed", func(t *testing.T) {
		h, parser, userStore := newHandler(t)
		parser.On("ParseSessionToken", "orphan-token").Return(userID, nil)
		userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer orphan-token")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
