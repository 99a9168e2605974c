package handlers

import (
	"net/http"
	"strings"

	"salestracker/internal/service"

	"github.com/gin-gonic/gin"
)

// identityKey is the gin context key holding the resolved *service.Identity.
const identityKey = "identity"

// accessTokenCookie is the cookie fallback for clients that cannot set the
// Authorization header (browser page loads, websocket upgrades).
const accessTokenCookie = "access_token"

// bearerToken extracts the access token from the Authorization header or,
// failing that, from the access_token cookie. The bool reports presence.
func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// identityMiddleware resolves the caller's identity from the bearer token
// and stores it in the request context. Missing, malformed and expired
// tokens all abort with 401.
func (h *Handler) identityMiddleware(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing or malformed access token",
		})
		return
	}

	identity, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(identityKey, identity)
	c.Next()
}

// adminOnly gates admin endpoints on the role carried in the verified token.
func (h *Handler) adminOnly(c *gin.Context) {
	identity := currentIdentity(c)
	if identity == nil || !identity.Role.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "admin access required",
		})
		return
	}
	c.Next()
}

// currentIdentity returns the identity set by identityMiddleware, or nil.
func currentIdentity(c *gin.Context) *service.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(*service.Identity)
	if !ok {
		return nil
	}
	return identity
}
