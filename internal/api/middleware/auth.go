package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/SextoAndar/sexto-andar-auth/internal/api/metrics"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/service"
)

// CookieName is the session cookie carrying the token for browser clients.
const CookieName = "access_token"

// Context keys populated by Auth.
const (
	IdentityKey = "identity"
	RoleKey     = "role"
)

// TokenVerifier validates a raw token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// Auth extracts the session token, verifies it, and injects the caller
// identity into the request context. The Authorization header takes
// precedence over the cookie. Verification is pure claim checking with no
// account lookup, so a token for a deleted account passes until it expires.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return domain.ErrUnauthenticated
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyLabel(err)).Inc()
				return domain.ErrUnauthenticated
			}
			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()

			identity := claims.Identity()
			c.Set(IdentityKey, identity)
			c.Set(RoleKey, string(identity.Role))

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func verifyLabel(err error) string {
	switch err {
	case domain.ErrTokenExpired:
		return "expired"
	case domain.ErrTokenSignature:
		return "bad_signature"
	default:
		return "malformed"
	}
}
