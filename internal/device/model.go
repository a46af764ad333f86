package device

import (
	"net/http"
	"time"

	"github.com/gevartrix/dshop-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "Device not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "Device name has not been provided")
	ErrNoCategories = apperror.New(http.StatusNotFound, "No device categories are defined")
	ErrNoPhoto      = apperror.New(http.StatusNotFound, "Device has no photo")
)

// NotSpecified is the placeholder for descriptive fields left blank at
// creation.
const NotSpecified = "Not specified"

// Device is a bookable piece of shared hardware. Name is unique across the
// store; the descriptive fields are free text.
type Device struct {
	ID        string // UUID
	Name      string
	Category  string
	Model     string
	RAM       string
	OS        string
	PhotoPath *string // storage-relative path, nil until a photo is uploaded
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter narrows device listings. Empty fields are ignored.
type Filter struct {
	Name     string
	Category string
}
