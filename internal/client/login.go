package client

import (
	"github.com/chzyer/readline"
	"github.com/daybookhq/daybook/pkg/libdaybook"
	"github.com/pkg/errors"
)

// Login connects to a Daybook server.
func Login() error {
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

	if _, err = client.Login(cfg.Email, string(password)); err != nil {
		return errors.Wrap(err, "could not login")
	}
	cfg.Session = client.Session()

	return Save(cfg)
}
