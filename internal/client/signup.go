package client

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/daybookhq/daybook/pkg/libdaybook"
	"github.com/pkg/errors"
)

// SignUp registers a new account on a Daybook server.
func SignUp() error {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	cfg.Endpoint = endpoint

	client, err := libdaybook.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach given endpoint")
	}

	cfg.Email, err = readline.Line("Email: ")
	if err != nil {
		return errors.Wrap(err, "could not read email from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	signup, err := client.SignUp(cfg.Email, string(password))
	if err != nil {
		return errors.Wrap(err, "could not sign up")
	}

	if signup.NeedsEmailConfirmation {
		fmt.Println("Account created, check your mailbox to confirm your email before logging in.")
		return nil
	}

	cfg.Session = client.Session()
	return Save(cfg)
}
