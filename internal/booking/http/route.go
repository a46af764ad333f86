package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the booking lifecycle routes, preserving the REST
// surface the UI5 front end consumes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.GET("", h.ListMine)
		group.POST("", h.Request)
		group.DELETE("/:bookingId", h.Close)

		group.GET("/pending", adminMiddleware, h.ListPending)
		group.PATCH("/:bookingId/:ok", adminMiddleware, h.Decide)
	}
}
