package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/confiteria/conference-system/internal/core/security"
)

// ctxActor builds the security actor from the claims injected by the Auth
// middleware and performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - user_id must be non-empty; without it the JWT is structurally valid
//     but operationally unusable — reject with 401.
func ctxActor(c echo.Context) (security.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return security.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return security.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return security.Actor{UserID: userID, Role: role}, nil
}
