package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all device routes. Mutations require the admin
// middleware in addition to authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/devices")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/categories", h.Categories)
		group.GET("/:deviceName/photo", h.Photo)

		group.POST("", adminMiddleware, h.Create)
		group.DELETE("/:deviceName", adminMiddleware, h.Delete)
		group.PUT("/:deviceName/photo", adminMiddleware, h.UploadPhoto)
	}
}
