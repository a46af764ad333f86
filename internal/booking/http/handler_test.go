package http_test

import (
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
	bookingHttp "github.com/gevartrix/dshop-booking-backend/internal/booking/http"
	"github.com/gevartrix/dshop-booking-backend/internal/booking/mocks"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/apperror"
)

const testUserID = "2b0d3f19-4b42-4a81-94b4-1a9df29b0b44"

type handlerDeps struct {
	service *mocks.MockService
	router  *gin.Engine
	token   string
}

func newHandlerDeps(t *testing.T) handlerDeps {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	service := mocks.NewMockService(ctrl)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.GenerateToken(testUserID, "petr.ivanov@example.com")
	require.NoError(t, err)

	router := gin.New()
	group := router.Group("/api/v1")
	authMiddleware := auth.AuthRequired(jwtManager)
	// Admin routes trust the gate itself in these tests; the gate has its
	// own coverage.
	adminMiddleware := func(c *gin.Context) { c.Next() }
	bookingHttp.RegisterRoutes(group, bookingHttp.NewHandler(service), authMiddleware, adminMiddleware)

	return handlerDeps{service: service, router: router, token: token}
}

func (d handlerDeps) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.token)

	rec := httptest.NewRecorder()
	d.router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerRequest(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		deps := newHandlerDeps(t)

		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		deps.service.EXPECT().
			Request(gomock.Any(), testUserID, "Raspberry Pi", from, to).
			Return(&booking.Booking{ID: "bkg-1"}, `Your booking request for "Raspberry Pi" has been sent to the admins`, nil)

		rec := deps.do(http.MethodPost, "/api/v1/bookings",
			`{"device":"Raspberry Pi","from":"2024-03-01","to":"2024-03-05"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["message"], "sent to the admins")
		assert.Contains(t, body["success"], "Raspberry Pi")
	})

	t.Run("conflict reasons reach the wire as an error list", func(t *testing.T) {
		deps := newHandlerDeps(t)

		reasons := []string{
			"Device 'Raspberry Pi' is already reserved for the chosen period. Try changing the booking date (2024-03-01)",
		}
		deps.service.EXPECT().
			Request(gomock.Any(), testUserID, "Raspberry Pi", gomock.Any(), gomock.Any()).
			Return(nil, "", apperror.NewList(http.StatusConflict, reasons))

		rec := deps.do(http.MethodPost, "/api/v1/bookings",
			`{"device":"Raspberry Pi","from":"2024-03-01","to":"2024-03-05"}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		var body struct {
			Error []string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, reasons, body.Error)
	})

	t.Run("missing fields never reach the service", func(t *testing.T) {
		deps := newHandlerDeps(t)

		rec := deps.do(http.MethodPost, "/api/v1/bookings", `{"device":"","from":"","to":""}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body struct {
			Error []string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []string{
			"Device has not been selected",
			"Booking dates have not been provided",
		}, body.Error)
	})

	t.Run("malformed date", func(t *testing.T) {
		deps := newHandlerDeps(t)

		rec := deps.do(http.MethodPost, "/api/v1/bookings",
			`{"device":"Raspberry Pi","from":"03/01/2024","to":"2024-03-05"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no token", func(t *testing.T) {
		deps := newHandlerDeps(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings",
			strings.NewReader(`{"device":"Raspberry Pi","from":"2024-03-01","to":"2024-03-05"}`))
		rec := httptest.NewRecorder()
		deps.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandlerListMine(t *testing.T) {
	deps := newHandlerDeps(t)

	deps.service.EXPECT().ListMine(gomock.Any(), testUserID).Return([]*booking.Booking{{
		ID:       "bkg-1",
		DeviceID: "dev-1",
		Device:   booking.DeviceBrief{ID: "dev-1", Name: "Raspberry Pi", Category: "Single-board computer"},
		From:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:   booking.StatusApproved,
	}}, nil)

	rec := deps.do(http.MethodGet, "/api/v1/bookings", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Bookings []bookingHttp.BookingResponse `json:"bookings"`
		Success  string                        `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, "bkg-1", body.Bookings[0].ID)
	assert.Equal(t, "Raspberry Pi", body.Bookings[0].Device.Name)
	assert.Equal(t, "2024-03-01", body.Bookings[0].From)
	assert.Equal(t, "2024-03-05", body.Bookings[0].To)
	assert.Equal(t, "approved", body.Bookings[0].Status)
}

func TestHandlerClose(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		deps := newHandlerDeps(t)
		id := "11111111-2222-3333-4444-555555555555"

		deps.service.EXPECT().Close(gomock.Any(), testUserID, id).
			Return(&booking.Booking{ID: id, Device: booking.DeviceBrief{Name: "Raspberry Pi"}},
				`Booking of device "Raspberry Pi" has been successfully deleted`, nil)

		rec := deps.do(http.MethodDelete, "/api/v1/bookings/"+id, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "successfully deleted")
	})

	t.Run("invalid id is rejected before the service", func(t *testing.T) {
		deps := newHandlerDeps(t)

		rec := deps.do(http.MethodDelete, "/api/v1/bookings/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("foreign booking reads as missing", func(t *testing.T) {
		deps := newHandlerDeps(t)
		id := "11111111-2222-3333-4444-555555555555"

		deps.service.EXPECT().Close(gomock.Any(), testUserID, id).
			Return(nil, "", apperror.New(http.StatusNotFound, "Booking '"+id+"' not found"))

		rec := deps.do(http.MethodDelete, "/api/v1/bookings/"+id, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandlerDecide(t *testing.T) {
	id := "11111111-2222-3333-4444-555555555555"

	t.Run("ok approves", func(t *testing.T) {
		deps := newHandlerDeps(t)

		deps.service.EXPECT().Decide(gomock.Any(), id, true).
			Return(&booking.Booking{ID: id, Status: booking.StatusApproved}, "Request has been approved", nil)

		rec := deps.do(http.MethodPatch, "/api/v1/bookings/"+id+"/ok", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "approved")
	})

	t.Run("anything else denies", func(t *testing.T) {
		deps := newHandlerDeps(t)

		deps.service.EXPECT().Decide(gomock.Any(), id, false).
			Return(&booking.Booking{ID: id, Status: booking.StatusDenied}, "Request has been denied", nil)

		rec := deps.do(http.MethodPatch, "/api/v1/bookings/"+id+"/nope", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "denied")
	})

	t.Run("already decided", func(t *testing.T) {
		deps := newHandlerDeps(t)

		deps.service.EXPECT().Decide(gomock.Any(), id, true).
			Return(nil, "", booking.ErrAlreadyDecided)

		rec := deps.do(http.MethodPatch, "/api/v1/bookings/"+id+"/ok", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlerListPending(t *testing.T) {
	deps := newHandlerDeps(t)

	deps.service.EXPECT().ListPending(gomock.Any()).Return([]*booking.Booking{{
		ID:       "bkg-1",
		UserName: "Petr Ivanov",
		Device:   booking.DeviceBrief{Name: "Raspberry Pi"},
		From:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:   booking.StatusRequested,
	}}, nil)

	rec := deps.do(http.MethodGet, "/api/v1/bookings/pending", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Bookings []bookingHttp.PendingBookingResponse `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, "Raspberry Pi", body.Bookings[0].Name)
	assert.Equal(t, "Petr Ivanov", body.Bookings[0].User)
}
