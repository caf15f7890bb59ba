package middlewares

import (
	"net/http"

	"github.com/daybookhq/daybook/internal/identity"
	"github.com/daybookhq/daybook/internal/jerror"
	"github.com/daybookhq/daybook/pkg/libdaybook"
	"github.com/labstack/echo/v4"
)

// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
const CurrentUserContextKey = "current_user"

// Session returns a session auth middleware.
// It extracts the access token from the request cookie and verifies it against
// the identity provider on every request. A missing cookie short-circuits
// without contacting the provider, and any provider failure is treated the same
// as an absent session. It stores current_user into echo.Context.
func Session(verifier identity.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			token := AccessToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, jerror.New("Unauthorized"))
			}

			user, err := verifier.UserFromToken(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jerror.New("Unauthorized"))
			}

			// Store current_user for handlers.
			c.Set(CurrentUserContextKey, user)
			return next(c)
		}
	}
}

// AccessToken returns the access token carried by the request's cookie, if any.
func AccessToken(c echo.Context) string {
	cookie, err := c.Cookie(libdaybook.CookieAccessToken)
	if err != nil {
		return ""
	}
	return cookie.Value
}
