package client

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/daybookhq/daybook/pkg/libdaybook"
	"github.com/pkg/errors"
)

// connect loads a client from the given config and restores its session.
func connect(cfg Config) (libdaybook.Client, error) {
	client, err := libdaybook.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach Daybook endpoint")
	}

	if !cfg.Session.Defined() {
		return nil, errors.New("session is not defined, please login first")
	}
	client.SetSession(cfg.Session)

	return client, nil
}

// List prints all the entries of the current user, newest first.
func List() error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	entries, err := client.Entries()
	if err != nil {
		return errors.Wrap(err, "could not get entries")
	}

	for _, entry := range entries {
		fmt.Printf("%s  %s  %s\n", entry.ID, entry.CreatedAt.Format("2006-01-02 15:04"), entry.Title)
	}
	return nil
}

// Add creates a new entry.
func Add() error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	title, err := readline.Line("Title: ")
	if err != nil {
		return errors.Wrap(err, "could not read title from stdin")
	}
	content, err := readline.Line("Content: ")
	if err != nil {
		return errors.Wrap(err, "could not read content from stdin")
	}

	entry, err := client.CreateEntry(title, content)
	if err != nil {
		return errors.Wrap(err, "could not create entry")
	}

	fmt.Println("Created", entry.ID)
	return nil
}

// Show prints one entry.
func Show(id string) error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	entry, err := client.Entry(id)
	if err != nil {
		return errors.Wrap(err, "could not get entry")
	}

	fmt.Printf("%s (%s)\n\n%s\n", entry.Title, entry.CreatedAt.Format("2006-01-02 15:04"), entry.Content)
	return nil
}

// Edit replaces the title and content of one entry.
func Edit(id string) error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	title, err := readline.Line("Title: ")
	if err != nil {
		return errors.Wrap(err, "could not read title from stdin")
	}
	content, err := readline.Line("Content: ")
	if err != nil {
		return errors.Wrap(err, "could not read content from stdin")
	}

	entry, err := client.UpdateEntry(id, title, content)
	if err != nil {
		return errors.Wrap(err, "could not update entry")
	}

	fmt.Println("Updated", entry.ID)
	return nil
}

// Rm removes one entry.
func Rm(id string) error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := connect(cfg)
	if err != nil {
		return err
	}

	if err := client.DeleteEntry(id); err != nil {
		return errors.Wrap(err, "could not delete entry")
	}

	fmt.Println("Deleted", id)
	return nil
}
