package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/SextoAndar/sexto-andar-auth/internal/api/middleware"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

// ctxIdentity extracts the caller identity injected by the Auth middleware.
// Its presence proves the middleware ran; on a misrouted handler the request
// is rejected rather than treated as anonymous.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || identity.ID == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}
