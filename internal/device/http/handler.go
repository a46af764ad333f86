package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gevartrix/dshop-booking-backend/internal/device"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/response"
)

// Handler exposes device management over HTTP. Listing and categories are
// open to any authenticated user; mutations sit behind the admin gate at the
// routing level.
type Handler struct {
	service device.Service
}

func NewHandler(service device.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListDevicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: []string{"invalid query parameters"}})
		return
	}

	devices, err := h.service.List(c.Request.Context(), device.Filter{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	// An empty result is reported as not found, which is what the front end
	// expects when a name filter misses.
	if len(devices) == 0 {
		response.Error(c, device.ErrNotFound)
		return
	}

	items := make([]DeviceResponse, len(devices))
	for i, d := range devices {
		items[i] = NewDeviceResponse(d)
	}

	c.JSON(http.StatusOK, ListDevicesResponse{
		Devices: items,
		Success: "All requested devices have been listed",
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: []string{"Device name has not been provided"}})
		return
	}

	d, err := h.service.Create(c.Request.Context(), device.CreateRequest{
		Name:     req.Name,
		Category: req.Category,
		Model:    req.Model,
		RAM:      req.RAM,
		OS:       req.OS,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, DeviceEnvelope{
		Device:  NewDeviceResponse(d),
		Success: "New device has been added",
	})
}

func (h *Handler) Delete(c *gin.Context) {
	name := c.Param("deviceName")

	d, err := h.service.DeleteByName(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, DeviceEnvelope{
		Device:  NewDeviceResponse(d),
		Success: "Device \"" + d.Name + "\" has been successfully deleted",
	})
}

func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoriesResponse{
		Categories: categories,
		Success:    "All categories have been listed",
	})
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	name := c.Param("deviceName")

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: []string{"Photo file has not been provided"}})
		return
	}

	src, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	d, err := h.service.SetPhoto(c.Request.Context(), name, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, DeviceEnvelope{
		Device:  NewDeviceResponse(d),
		Success: "Device photo has been updated",
	})
}

func (h *Handler) Photo(c *gin.Context) {
	name := c.Param("deviceName")

	photo, err := h.service.Photo(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer photo.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, photo)
}
