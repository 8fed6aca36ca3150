package v1handler

import (
	"net/http"
	"strings"

	"jobboard/pkg/domain"

	"github.com/gin-gonic/gin"
)

// userContextKey is the gin context key the authenticated user is stored under.
const userContextKey = "authUser"

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}

	return token, true
}

// RequireAuth verifies the bearer token and stores the authenticated user in
// the request context. Requests without a valid token are rejected.
func (h *Handler) RequireAuth(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})

		return
	}

	user, err := h.deps.Auth.UserFromToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		c.Abort()

		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

// OptionalAuth resolves the bearer token when present but lets anonymous
// requests through.
func (h *Handler) OptionalAuth(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.Next()

		return
	}

	user, err := h.deps.Auth.UserFromToken(c.Request.Context(), token)
	if err != nil {
		c.Next()

		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

// currentUser returns the authenticated user stored by RequireAuth, or nil
// for anonymous requests.
func currentUser(c *gin.Context) *domain.User {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}

	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}

	return user
}
