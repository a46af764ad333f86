package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gevartrix/dshop-booking-backend/internal/auth"
	"github.com/gevartrix/dshop-booking-backend/internal/booking"
	bookingHttp "github.com/gevartrix/dshop-booking-backend/internal/booking/http"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/response"
	"github.com/gevartrix/dshop-booking-backend/internal/user"
)

type UserHandler struct {
	userService    user.Service
	bookingService booking.Service
	jwtManager     *auth.JWTManager
}

func NewHandler(userService user.Service, bookingService booking.Service, jwtManager *auth.JWTManager) *UserHandler {
	return &UserHandler{
		userService:    userService,
		bookingService: bookingService,
		jwtManager:     jwtManager,
	}
}

// Login authenticates a registered user by email and issues a JWT. The
// response also carries the profile and all confirmed bookings, sparing the
// front end a follow-up round trip.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: []string{"Enter your e-mail address"}})
		return
	}

	ctx := c.Request.Context()

	u, err := h.userService.LoginByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: []string{fmt.Sprintf("User '%s' is not registered", user.NormalizeEmail(req.Email))},
			})
			return
		}
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateToken(u.ID, u.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.confirmedBookings(c, u.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Token:    token,
		User:     NewUserResponse(u),
		Bookings: bookings,
		Success:  "User has logged in",
	})
}

// Identify returns the verified caller's profile and confirmed bookings,
// echoing back the credential the request carried.
func (h *UserHandler) Identify(c *gin.Context) {
	userID := auth.GetUserID(c)

	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Error: []string{fmt.Sprintf("User '%s' not found", userID)},
			})
			return
		}
		response.Error(c, err)
		return
	}

	bookings, err := h.confirmedBookings(c, u.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Token:    auth.TokenFromRequest(c),
		User:     NewUserResponse(u),
		Bookings: bookings,
		Success:  "Information about the user has been fetched",
	})
}

// VerifyToken reports whether the supplied credential maps to a registered
// user. The body is a plain boolean either way.
func (h *UserHandler) VerifyToken(c *gin.Context) {
	tokenStr := auth.TokenFromRequest(c)
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, false)
		return
	}

	claims, err := h.jwtManager.ParseAndValidate(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, false)
		return
	}

	if _, err := h.userService.GetByID(c.Request.Context(), claims.UserID); err != nil {
		c.JSON(http.StatusNotFound, false)
		return
	}

	c.JSON(http.StatusOK, true)
}

func (h *UserHandler) confirmedBookings(c *gin.Context, userID string) ([]bookingHttp.BookingResponse, error) {
	bookings, err := h.bookingService.ListMine(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}

	items := make([]bookingHttp.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = bookingHttp.NewBookingResponse(b)
	}
	return items, nil
}
