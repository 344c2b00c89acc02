package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"souvenir-shop-backend/pkg/jwt"
)

const (
	ContextKeyUserID       = "userID"
	ContextKeyRole         = "role"
	ContextKeyCampusStatus = "campusStatus"

	// AudienceNone is the audience tag for anonymous or unclassified callers.
	AudienceNone = "NONE"
)

// AuthMiddleware requires a valid Bearer access token and puts the
// caller's identity into the gin context.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c, manager)
		if !ok {
			c.JSON(401, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid user ID in token"})
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyCampusStatus, claims.CampusStatus)
		c.Next()
	}
}

// OptionalAuthMiddleware classifies the caller when a token is present
// but lets anonymous requests through with the NONE audience tag.
// Used on catalog read paths where promotions depend on the audience.
func OptionalAuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c, manager)
		if ok {
			if userID, err := uuid.Parse(claims.UserID); err == nil {
				c.Set(ContextKeyUserID, userID)
				c.Set(ContextKeyRole, claims.Role)
				c.Set(ContextKeyCampusStatus, claims.CampusStatus)
			}
		}
		c.Next()
	}
}

// AdminMiddleware runs after AuthMiddleware and rejects non-admin callers.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyRole)
		if role != "admin" {
			c.JSON(403, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseBearerToken(c *gin.Context, manager *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := manager.Verify(parts[1])
	if err != nil || claims.Type != "access" {
		return nil, false
	}

	return claims, true
}

// GetUserID extracts the authenticated user id from the gin context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetAudienceTag returns the caller's audience classification,
// defaulting to NONE for anonymous callers.
func GetAudienceTag(c *gin.Context) string {
	status := c.GetString(ContextKeyCampusStatus)
	if status == "" {
		return AudienceNone
	}
	return status
}
