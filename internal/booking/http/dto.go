package http

import (
	"github.com/gevartrix/dshop-booking-backend/internal/booking"
	devHttp "github.com/gevartrix/dshop-booking-backend/internal/device/http"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/request"
)

// CreateBookingRequest defines the payload for requesting a booking.
// Dates use the YYYY-MM-DD wire format; the binding errors are replaced by
// the field-level reasons the UI renders.
type CreateBookingRequest struct {
	Device string `json:"device"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// MissingFieldReasons lists a reason per absent mandatory field.
func (r *CreateBookingRequest) MissingFieldReasons() []string {
	var reasons []string
	if r.Device == "" {
		reasons = append(reasons, "Device has not been selected")
	}
	if r.From == "" || r.To == "" {
		reasons = append(reasons, "Booking dates have not been provided")
	}
	return reasons
}

// BookingResponse is a booking joined with its device, as shown in the
// user's bookings view.
type BookingResponse struct {
	ID     string                 `json:"id"`
	Device devHttp.DeviceResponse `json:"device"`
	From   string                 `json:"from"`
	To     string                 `json:"to"`
	Status string                 `json:"status"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID,
		Device: devHttp.DeviceResponse{
			ID:       b.Device.ID,
			Name:     b.Device.Name,
			Category: b.Device.Category,
			Model:    b.Device.Model,
			RAM:      b.Device.RAM,
			OS:       b.Device.OS,
		},
		From:   request.FormatDate(b.From),
		To:     request.FormatDate(b.To),
		Status: string(b.Status),
	}
}

// PendingBookingResponse is the admin view of a request awaiting decision.
type PendingBookingResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"` // device name
	User string `json:"user"` // requester's full name
	From string `json:"from"`
	To   string `json:"to"`
}

func NewPendingBookingResponse(b *booking.Booking) PendingBookingResponse {
	return PendingBookingResponse{
		ID:   b.ID,
		Name: b.Device.Name,
		User: b.UserName,
		From: request.FormatDate(b.From),
		To:   request.FormatDate(b.To),
	}
}

// ListBookingsResponse matches the user bookings payload consumed by the UI.
type ListBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Success  string            `json:"success"`
}

// ListPendingResponse matches the admin pendings payload.
type ListPendingResponse struct {
	Bookings []PendingBookingResponse `json:"bookings"`
	Success  string                   `json:"success"`
}

// CreateBookingResponse confirms a new request.
type CreateBookingResponse struct {
	Message string `json:"message"`
	Success string `json:"success"`
}

// BookingEnvelope wraps a single booking with the confirmation string.
type BookingEnvelope struct {
	Booking BookingResponse `json:"booking"`
	Success string          `json:"success"`
}
