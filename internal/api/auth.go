package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/program-store-api/internal/models"
)

// identityKey is the gin context key holding the authenticated identity
const identityKey = "identity"

// authMiddleware parses the bearer token and stores the caller's identity in
// the request context. Identity is request-scoped; nothing about the caller
// lives in process-wide state.
func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		identity := &models.Identity{}
		if sub, ok := claims["sub"].(string); ok {
			identity.UserID = sub
		}
		if email, ok := claims["email"].(string); ok {
			identity.Email = email
		}
		if role, ok := claims["role"].(string); ok {
			identity.Role = role
		}
		if identity.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// adminRequired rejects non-administrator identities. Runs after
// authMiddleware, so a missing identity is already a 401 by now.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFromContext(c)
		if !identity.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// identityFromContext retrieves the authenticated identity, or nil
func identityFromContext(c *gin.Context) *models.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}
