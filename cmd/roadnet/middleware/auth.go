package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gridworks/roadnet/common/models"
)

const (
	identityKey = "caller_identity"
	tokenKey    = "session_token"
)

// Resolver maps a session token to a caller identity. An unknown token
// resolves to (nil, nil): anonymous.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// ResolveIdentity extracts the bearer token from the request and resolves it
// to an identity stored in the echo context. Requests without a token, with
// an unknown token, or hitting a resolver failure proceed as anonymous;
// authorization decisions belong to the service layer.
func ResolveIdentity(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token != "" {
				c.Set(tokenKey, token)
				if identity, err := resolver.Resolve(c.Request().Context(), token); err == nil && identity != nil {
					c.Set(identityKey, identity)
				}
			}
			return next(c)
		}
	}
}

// CallerIdentity returns the resolved identity for the request, or nil for
// anonymous callers.
func CallerIdentity(c echo.Context) *models.Identity {
	identity, _ := c.Get(identityKey).(*models.Identity)
	return identity
}

// SessionToken returns the bearer token presented with the request, if any.
func SessionToken(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
