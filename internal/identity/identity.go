// Package identity talks to the external identity provider.
// The provider owns users, credentials and session tokens; this package only
// forwards them and never stores anything locally.
package identity

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

type (
	// A User is the provider's representation of an authenticated user.
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	// A Session holds the tokens issued by the provider.
	Session struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
		TokenType    string `json:"token_type"`
	}

	// A Registration is the outcome of a sign-up or a sign-in.
	// Session is nil when the provider requires an email confirmation
	// before issuing tokens.
	Registration struct {
		User    *User
		Session *Session
	}

	// A Client defines all interactions that can be performed on the identity provider.
	Client interface {
		// SignUp registers a new user with the provider.
		SignUp(ctx context.Context, email, password string) (*Registration, error)
		// SignIn authenticates a user with the provider's password grant.
		SignIn(ctx context.Context, email, password string) (*Registration, error)
		// UserFromToken returns the user denoted by the given access token.
		UserFromToken(ctx context.Context, token string) (*User, error)
	}
)

// An Error represents an HTTP error returned by the identity provider.
type Error struct {
	StatusCode int
	Message    string `json:"message"`
	// Alternate field names used across provider versions.
	Msg         string `json:"msg"`
	Description string `json:"error_description"`
}

func parseError(r io.Reader, code int) error {
	perr := &Error{StatusCode: code}
	dec := json.NewDecoder(r)
	if err := dec.Decode(perr); err != nil {
		return errors.Wrap(err, "could not parse provider error")
	}
	return perr
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Msg != "":
		return e.Msg
	case e.Description != "":
		return e.Description
	}
	return "identity provider error"
}

// IsProviderError returns the provider error if err originates from the provider.
func IsProviderError(err error) (*Error, bool) {
	perr, ok := errors.Cause(err).(*Error)
	return perr, ok
}
