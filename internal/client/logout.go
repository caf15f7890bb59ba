package client

import (
	"github.com/pkg/errors"
)

// Logout disconnects from a Daybook server.
func Logout() error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	//
	//

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	if err = client.Logout(); err != nil {
		return errors.Wrap(err, "could not logout")
	}

	return errors.Wrap(Remove(), "could not remove credential file")
}
