package http

import (
	"time"

	"github.com/gevartrix/dshop-booking-backend/internal/device"
)

// ListDevicesRequest defines query parameters for listing devices.
type ListDevicesRequest struct {
	Name     string `form:"name"`
	Category string `form:"category"`
}

// CreateDeviceRequest defines the payload for registering a new device.
// Only the name is mandatory; blank descriptive fields are defaulted.
type CreateDeviceRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Model    string `json:"model"`
	RAM      string `json:"ram"`
	OS       string `json:"os"`
}

// DeviceResponse is the shape of device data returned in API responses.
type DeviceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Model     string    `json:"model"`
	RAM       string    `json:"ram"`
	OS        string    `json:"os"`
	HasPhoto  bool      `json:"has_photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDeviceResponse converts a domain device to its API representation.
func NewDeviceResponse(d *device.Device) DeviceResponse {
	return DeviceResponse{
		ID:        d.ID,
		Name:      d.Name,
		Category:  d.Category,
		Model:     d.Model,
		RAM:       d.RAM,
		OS:        d.OS,
		HasPhoto:  d.PhotoPath != nil,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ListDevicesResponse matches the list payload consumed by the UI.
type ListDevicesResponse struct {
	Devices []DeviceResponse `json:"devices"`
	Success string           `json:"success"`
}

// DeviceEnvelope wraps a single device with the confirmation string.
type DeviceEnvelope struct {
	Device  DeviceResponse `json:"device"`
	Success string         `json:"success"`
}

// CategoriesResponse lists the distinct device categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Success    string   `json:"success"`
}
