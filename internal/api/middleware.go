package api

import (
	"net/http"
	"strings"

	"dpstore-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	identityKey       = "identity"
	sessionCookieName = "dp.sid"
)

// optionalAuth resolves the caller's identity from a bearer token or, failing
// that, from the Google-login session cookie. It never rejects: guests simply
// proceed with no identity set.
func (h *Handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if id, err := h.tokens.Verify(token); err == nil && id.ID > 0 {
				c.Set(identityKey, id)
				c.Next()
				return
			}
		}

		if sid, err := c.Cookie(sessionCookieName); err == nil && sid != "" {
			if userID, err := h.sessions.Get(c.Request.Context(), sid); err == nil {
				if user, err := h.accounts.Profile(c.Request.Context(), userID); err == nil {
					c.Set(identityKey, &auth.Identity{
						ID:       user.ID,
						Email:    user.Email,
						FullName: user.FullName,
					})
				}
			}
		}

		c.Next()
	}
}

// requireLogin aborts with 401 unless optionalAuth resolved a customer.
func (h *Handler) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentIdentity(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Akses ditolak. Anda harus login.",
			})
			return
		}
		c.Next()
	}
}

// requireAdmin accepts only bearer tokens carrying the admin claim.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Akses ditolak. Anda harus login.",
			})
			return
		}
		id, err := h.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil || !id.IsAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Akses ditolak. Anda harus login.",
			})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// currentIdentity returns the resolved customer identity, or nil for guests.
func currentIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, ok := v.(*auth.Identity)
	if !ok || id.ID == 0 {
		return nil
	}
	return id
}
