package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the authentication routes.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/auth")
	{
		group.POST("", h.Login)
		group.POST("/token", h.VerifyToken)

		group.GET("", authMiddleware, h.Identify)
	}
}
