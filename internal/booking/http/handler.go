package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gevartrix/dshop-booking-backend/internal/auth"
	"github.com/gevartrix/dshop-booking-backend/internal/booking"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/request"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// ListMine returns the caller's confirmed bookings, each joined with its
// device. Requested and denied bookings are never part of this view.
func (h *Handler) ListMine(c *gin.Context) {
	userID := auth.GetUserID(c)

	bookings, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, ListBookingsResponse{
		Bookings: items,
		Success:  "Your bookings have been fetched",
	})
}

// Request admits a new booking request for the caller.
func (h *Handler) Request(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: []string{"invalid request body"}})
		return
	}

	if reasons := req.MissingFieldReasons(); len(reasons) > 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: reasons})
		return
	}

	from, to, ok := parseDates(c, req.From, req.To)
	if !ok {
		return
	}

	userID := auth.GetUserID(c)

	_, msg, err := h.service.Request(c.Request.Context(), userID, req.Device, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{
		Message: msg,
		Success: "Successfully booked device \"" + req.Device + "\". Check Your Bookings to edit it and return the device",
	})
}

// Close deletes the caller's booking and unlinks it from its user and device.
func (h *Handler) Close(c *gin.Context) {
	id := c.Param("bookingId")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: []string{"invalid booking id"}})
		return
	}

	userID := auth.GetUserID(c)

	b, msg, err := h.service.Close(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookingEnvelope{
		Booking: NewBookingResponse(b),
		Success: msg,
	})
}

// ListPending returns all requests awaiting a decision. Admin only.
func (h *Handler) ListPending(c *gin.Context) {
	bookings, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PendingBookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewPendingBookingResponse(b)
	}

	c.JSON(http.StatusOK, ListPendingResponse{
		Bookings: items,
		Success:  "All pending bookings have been fetched",
	})
}

// Decide approves or denies a pending request. Admin only. The trailing
// path segment spells the verdict: "ok" approves, anything else denies.
func (h *Handler) Decide(c *gin.Context) {
	id := c.Param("bookingId")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: []string{"invalid booking id"}})
		return
	}

	approve := c.Param("ok") == "ok"

	b, msg, err := h.service.Decide(c.Request.Context(), id, approve)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookingEnvelope{
		Booking: NewBookingResponse(b),
		Success: msg,
	})
}

// parseDates parses both wire dates, rendering a validation failure itself
// when either is malformed.
func parseDates(c *gin.Context, fromStr, toStr string) (from, to time.Time, ok bool) {
	from, err := request.ParseDate(fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: []string{err.Error()}})
		return time.Time{}, time.Time{}, false
	}
	to, err = request.ParseDate(toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: []string{err.Error()}})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
