package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context key under which the authenticated user's id is stored.
const userIDKey = "userId"

const (
	errMissingAuthHeader = "Authorization token required"
	errBadAuthHeader     = "Invalid Authorization header format"
	errInvalidToken      = "Invalid or expired token"
)

// authMiddleware extracts the bearer token, verifies it and resolves the
// caller. Every /api/books handler runs behind it.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errMissingAuthHeader})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errBadAuthHeader})
		return
	}

	userID, err := h.services.Authorization.Authenticate(c.Request.Context(), parts[1])
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errInvalidToken})
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}
