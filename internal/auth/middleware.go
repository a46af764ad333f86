package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenHeader is the legacy header the UI5 front end sends the credential in.
// Authorization: Bearer is accepted as well.
const TokenHeader = "x-auth-token"

// TokenFromRequest extracts the bearer token from the request, checking the
// Authorization header first and the legacy x-auth-token header second.
// Returns an empty string when no credential is present.
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return c.GetHeader(TokenHeader)
}

// AuthRequired is a Gin middleware that validates the caller's JWT and stores
// the verified identity in the request context.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := TokenFromRequest(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": []string{"No token provided"},
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": []string{"Provided token is invalid"},
			})
			return
		}

		// Store user info into Gin context for later handlers.
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)

		c.Next()
	}
}

const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
)

// GetUserID returns the authenticated user's ID, or an empty string when the
// request carried no verified identity.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetUserEmail returns the authenticated user's email, or an empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}
