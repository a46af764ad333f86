package booking

import (
	"net/http"
	"time"

	"github.com/gevartrix/dshop-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "Booking not found")
	ErrDeviceNotFound = apperror.New(http.StatusNotFound, "Device not found")
	ErrAlreadyDecided = apperror.New(http.StatusBadRequest, "Booking request has already been decided")
)

// Status is the booking lifecycle state. The persisted value is the enum
// string, which makes the historical (pending=true, accepted=true) anomaly
// unrepresentable.
type Status string

const (
	// StatusRequested means the booking awaits an admin decision.
	StatusRequested Status = "requested"
	// StatusApproved means the booking occupies its date range for conflict
	// checking.
	StatusApproved Status = "approved"
	// StatusDenied is terminal and inert: denied bookings neither block the
	// device nor show up in user listings.
	StatusDenied Status = "denied"
)

// Booking reserves exactly one device for one user over an inclusive range
// of dates.
type Booking struct {
	ID        string
	UserID    string
	UserName  string // requester's full name, filled by admin listings
	DeviceID  string
	Device    DeviceBrief // filled by joined queries
	From      time.Time   // date-only, UTC midnight
	To        time.Time   // date-only, UTC midnight
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeviceBrief carries the device columns that booking listings join in.
type DeviceBrief struct {
	ID       string
	Name     string
	Category string
	Model    string
	RAM      string
	OS       string
}
