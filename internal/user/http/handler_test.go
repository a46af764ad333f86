package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gevartrix/dshop-booking-backend/internal/auth"
	"github.com/gevartrix/dshop-booking-backend/internal/booking"
	bookingmocks "github.com/gevartrix/dshop-booking-backend/internal/booking/mocks"
	"github.com/gevartrix/dshop-booking-backend/internal/user"
	userHttp "github.com/gevartrix/dshop-booking-backend/internal/user/http"
)

// fakeUserService serves a single registered user.
type fakeUserService struct {
	registered *user.User
}

func (s *fakeUserService) LoginByEmail(_ context.Context, email string) (*user.User, error) {
	if s.registered != nil && s.registered.Email == user.NormalizeEmail(email) {
		return s.registered, nil
	}
	return nil, user.ErrNotFound
}

func (s *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	if s.registered != nil && s.registered.ID == id {
		return s.registered, nil
	}
	return nil, user.ErrNotFound
}

func (s *fakeUserService) IsAdmin(_ context.Context, id string) (bool, error) {
	u, err := s.GetByID(context.Background(), id)
	if err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}

func (s *fakeUserService) Create(_ context.Context, _ *user.User) error { return nil }

type authDeps struct {
	users      *fakeUserService
	bookings   *bookingmocks.MockService
	jwtManager *auth.JWTManager
	router     *gin.Engine
}

func newAuthDeps(t *testing.T) authDeps {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	bookings := bookingmocks.NewMockService(ctrl)

	users := &fakeUserService{registered: &user.User{
		ID:        "user-1",
		Email:     "petr.ivanov@example.com",
		FirstName: "Petr",
		LastName:  "Ivanov",
	}}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	router := gin.New()
	group := router.Group("/api/v1")
	handler := userHttp.NewHandler(users, bookings, jwtManager)
	userHttp.RegisterRoutes(group, handler, auth.AuthRequired(jwtManager))

	return authDeps{users: users, bookings: bookings, jwtManager: jwtManager, router: router}
}

func TestHandlerLogin(t *testing.T) {
	t.Run("issues a token and bundles confirmed bookings", func(t *testing.T) {
		deps := newAuthDeps(t)
		deps.bookings.EXPECT().ListMine(gomock.Any(), "user-1").
			Return([]*booking.Booking{{ID: "bkg-1", Status: booking.StatusApproved}}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth",
			strings.NewReader(`{"email":"Petr.Ivanov@Example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		deps.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body userHttp.SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "petr.ivanov@example.com", body.User.Email)
		require.Len(t, body.Bookings, 1)
		assert.Equal(t, "bkg-1", body.Bookings[0].ID)

		claims, err := deps.jwtManager.ParseAndValidate(body.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})

	t.Run("unregistered email", func(t *testing.T) {
		deps := newAuthDeps(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth",
			strings.NewReader(`{"email":"nobody@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		deps.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "User 'nobody@example.com' is not registered")
	})

	t.Run("missing email", func(t *testing.T) {
		deps := newAuthDeps(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		deps.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Enter your e-mail address")
	})
}

func TestHandlerIdentify(t *testing.T) {
	deps := newAuthDeps(t)
	deps.bookings.EXPECT().ListMine(gomock.Any(), "user-1").Return(nil, nil)

	token, err := deps.jwtManager.GenerateToken("user-1", "petr.ivanov@example.com")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth", nil)
	req.Header.Set(auth.TokenHeader, token)
	deps.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body userHttp.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// The credential is echoed back, not reissued.
	assert.Equal(t, token, body.Token)
	assert.Equal(t, "Petr Ivanov", body.User.FirstName+" "+body.User.LastName)
}

func TestHandlerVerifyToken(t *testing.T) {
	verify := func(t *testing.T, deps authDeps, token string) *httptest.ResponseRecorder {
		t.Helper()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		deps.router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token of a registered user", func(t *testing.T) {
		deps := newAuthDeps(t)
		token, err := deps.jwtManager.GenerateToken("user-1", "petr.ivanov@example.com")
		require.NoError(t, err)

		rec := verify(t, deps, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "true", rec.Body.String())
	})

	t.Run("valid token of a vanished user", func(t *testing.T) {
		deps := newAuthDeps(t)
		token, err := deps.jwtManager.GenerateToken("ghost", "ghost@example.com")
		require.NoError(t, err)

		rec := verify(t, deps, token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "false", rec.Body.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		deps := newAuthDeps(t)

		rec := verify(t, deps, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "false", rec.Body.String())
	})

	t.Run("no token", func(t *testing.T) {
		deps := newAuthDeps(t)

		rec := verify(t, deps, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "false", rec.Body.String())
	})
}
