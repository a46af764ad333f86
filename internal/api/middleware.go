package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gevartrix/dshop-booking-backend/internal/auth"
	"github.com/gevartrix/dshop-booking-backend/internal/user"
)

// RequireAdmin is the authorization gate in front of every privileged
// operation. It resolves the verified caller to their stored admin flag and
// rejects everyone else. It MUST be used after auth.AuthRequired.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": []string{"No token provided"}})
			return
		}

		isAdmin, err := userService.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": []string{"user not found"}})
			return
		}

		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": []string{fmt.Sprintf("User '%s' is not an admin", userID)},
			})
			return
		}

		c.Next()
	}
}
