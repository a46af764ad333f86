package http

import (
	bookingHttp "github.com/gevartrix/dshop-booking-backend/internal/booking/http"
	"github.com/gevartrix/dshop-booking-backend/internal/user"
)

// LoginRequest defines the payload for logging in. Identity is email-only:
// registration happens out of band and there is no password step.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UserResponse is the profile shape returned by the auth endpoints.
type UserResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
	}
}

// SessionResponse carries the credential, the profile and the user's
// confirmed bookings, both on login and on identify.
type SessionResponse struct {
	Token    string                        `json:"token"`
	User     UserResponse                  `json:"user"`
	Bookings []bookingHttp.BookingResponse `json:"bookings"`
	Success  string                        `json:"success"`
}
