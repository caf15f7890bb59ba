package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// Me prints the identity of the current session.
func Me() error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	user, err := client.Me()
	if err != nil {
		return errors.Wrap(err, "could not get identity")
	}
	if user == nil {
		fmt.Println("Session expired, please login again.")
		return nil
	}

	fmt.Printf("%s (%s)\n", user.Email, user.ID)
	return nil
}
