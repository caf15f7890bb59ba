package server

import (
	"net/http"
	"time"

	"github.com/daybookhq/daybook/internal/identity"
	"github.com/daybookhq/daybook/internal/jerror"
	"github.com/daybookhq/daybook/internal/server/middlewares"
	"github.com/daybookhq/daybook/pkg/libdaybook"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// auth contains all authentication handlers.
type auth struct {
	identity      identity.Client
	secureCookies bool
}

// credentialsParams are the user provided credentials forwarded to the identity provider.
type credentialsParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

///// Register
////
//

// Register handler is used to sign up the user against the identity provider.
// When the provider requires an email confirmation, no session is issued and no
// cookie is set.
func (h *auth) Register(c echo.Context) error {
	// Filter params
	var params credentialsParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, jerror.New("Could not get credentials."))
	}

	if params.Email == "" || params.Password == "" {
		return c.JSON(http.StatusBadRequest, jerror.New("Email and password are required"))
	}

	registration, err := h.identity.SignUp(c.Request().Context(), params.Email, params.Password)
	if err != nil {
		if perr, ok := identity.IsProviderError(err); ok {
			return c.JSON(http.StatusBadRequest, jerror.New(perr.Error()))
		}
		return errors.Wrap(err, "could not sign up")
	}

	if registration.Session == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"user":                   registration.User,
			"needsEmailConfirmation": true,
		})
	}

	h.setSessionCookies(c, registration.Session)
	return c.JSON(http.StatusOK, echo.Map{
		"user":                   registration.User,
		"needsEmailConfirmation": false,
	})
}

///// Login
////
//

// Login authenticates a user with the identity provider's password grant and
// stores the returned tokens as session cookies.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params credentialsParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, jerror.New("Could not get credentials."))
	}

	if params.Email == "" || params.Password == "" {
		return c.JSON(http.StatusBadRequest, jerror.New("Email and password are required"))
	}

	registration, err := h.identity.SignIn(c.Request().Context(), params.Email, params.Password)
	if err != nil {
		if perr, ok := identity.IsProviderError(err); ok {
			return c.JSON(http.StatusBadRequest, jerror.New(perr.Error()))
		}
		return errors.Wrap(err, "could not sign in")
	}

	h.setSessionCookies(c, registration.Session)
	return c.JSON(http.StatusOK, echo.Map{
		"user": registration.User,
	})
}

///// Logout
////
//

// Logout unconditionally expires the session cookies.
// It is idempotent and never fails, even without an active session.
func (h *auth) Logout(c echo.Context) error {
	h.clearSessionCookies(c)
	return c.JSON(http.StatusOK, echo.Map{
		"ok": true,
	})
}

///// Me
////
//

// Me reports the identity state of the caller. It never rejects the request,
// an absent or invalid session yields a null user.
func (h *auth) Me(c echo.Context) error {
	token := middlewares.AccessToken(c)
	if token == "" {
		return c.JSON(http.StatusOK, echo.Map{"user": nil})
	}

	user, err := h.identity.UserFromToken(c.Request().Context(), token)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"user": nil})
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func (h *auth) setSessionCookies(c echo.Context, session *identity.Session) {
	c.SetCookie(h.sessionCookie(libdaybook.CookieAccessToken, session.AccessToken, session.ExpiresIn))
	c.SetCookie(h.sessionCookie(libdaybook.CookieRefreshToken, session.RefreshToken, session.ExpiresIn))
}

func (h *auth) clearSessionCookies(c echo.Context) {
	for _, name := range []string{libdaybook.CookieAccessToken, libdaybook.CookieRefreshToken} {
		cookie := h.sessionCookie(name, "", -1)
		cookie.Expires = time.Unix(0, 0)
		c.SetCookie(cookie)
	}
}

func (h *auth) sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	}
}
