package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/virtual-queue/internal/auth"
	"github.com/BruksfildServices01/virtual-queue/internal/httperr"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
)

const (
	ContextIdentity = "identity"
	ContextAPIKey   = "apiKey"
)

// RequireIdentity resolves the caller through the session provider and
// rejects anonymous callers (401) and callers without one of roles (403).
func RequireIdentity(provider auth.SessionProvider, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := provider.CurrentIdentity(c.Request)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrMissingSubject) {
				logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("session lookup failed")
			}
			httperr.Unauthorized(c, "invalid_token", "unauthorized")
			c.Abort()
			return
		}
		if id == nil {
			httperr.Unauthorized(c, "missing_authorization", "unauthorized")
			c.Abort()
			return
		}
		if !id.HasRole(roles...) {
			httperr.Forbidden(c, "forbidden", "you do not have access to this resource")
			c.Abort()
			return
		}

		c.Set(ContextIdentity, id)
		ctx := auth.WithIdentity(c.Request.Context(), id)
		l := logging.Ctx(ctx).With().Str("business_id", id.ID).Logger()
		c.Request = c.Request.WithContext(logging.WithContext(ctx, l))

		c.Next()
	}
}

// IdentityFrom returns the identity set by RequireIdentity.
func IdentityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}

// RequireAPIKey takes the project api key from "Authorization: Bearer".
// Whether the key is valid is decided by the use case that resolves it.
func RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := BearerToken(c.Request)
		if key == "" {
			httperr.Unauthorized(c, "missing_api_key", "unauthorized")
			c.Abort()
			return
		}

		c.Set(ContextAPIKey, key)
		c.Next()
	}
}

func APIKeyFrom(c *gin.Context) string {
	return c.GetString(ContextAPIKey)
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
