package database

import (
	"github.com/daybookhq/daybook/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		EntryInteraction
	}

	// An EntryInteraction defines all the methods used to interact with entry record(s).
	// Every query is scoped by the owner's user id so a record owned by another
	// user is indistinguishable from an absent one.
	EntryInteraction interface {
		// FindEntriesByUserID returns all the entries of the given user, newest first.
		FindEntriesByUserID(userID string) ([]*model.Entry, error)
		// FindEntryByUserID returns the entry for the given id and user id.
		FindEntryByUserID(id, userID string) (*model.Entry, error)
		// DeleteEntryByUserID deletes the entry matching the given id and user id.
		DeleteEntryByUserID(id, userID string) error
	}
)
