package server

import (
	"net/http"

	"github.com/daybookhq/daybook/internal/database"
	"github.com/daybookhq/daybook/internal/jerror"
	"github.com/daybookhq/daybook/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// entry contains all entry handlers.
type entry struct {
	db database.Client
}

// entryParams are the user provided fields of an entry.
// The owner is never taken from the request.
type entryParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

///// List
////
//

// List returns all the entries of the current user, newest first.
// A user without entries gets an empty list, not an error.
func (h *entry) List(c echo.Context) error {
	entries, err := h.db.FindEntriesByUserID(currentUser(c).ID)
	if err != nil {
		return errors.Wrap(err, "could not list entries")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"entries": entries,
	})
}

///// Create
////
//

// Create inserts a new entry owned by the current user.
// The id and timestamps are assigned by the store.
func (h *entry) Create(c echo.Context) error {
	// Filter params
	var params entryParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, jerror.New("Could not get entry params."))
	}

	if params.Title == "" || params.Content == "" {
		return c.JSON(http.StatusBadRequest, jerror.New("Title and content are required"))
	}

	entry := &model.Entry{
		UserID:  currentUser(c).ID,
		Title:   params.Title,
		Content: params.Content,
	}
	if err := h.db.Save(entry); err != nil {
		return errors.Wrap(err, "could not create entry")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"entry": entry,
	})
}

///// Show
////
//

// Show returns one entry of the current user.
// An entry owned by another user renders the same not found response.
func (h *entry) Show(c echo.Context) error {
	entry, err := h.db.FindEntryByUserID(c.Param("id"), currentUser(c).ID)
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, jerror.New("Entry not found"))
		}
		return errors.Wrap(err, "could not get entry")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"entry": entry,
	})
}

///// Update
////
//

// Update replaces the title and content of one entry of the current user.
func (h *entry) Update(c echo.Context) error {
	// Filter params
	var params entryParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, jerror.New("Could not get entry params."))
	}

	if params.Title == "" || params.Content == "" {
		return c.JSON(http.StatusBadRequest, jerror.New("Title and content are required"))
	}

	entry, err := h.db.FindEntryByUserID(c.Param("id"), currentUser(c).ID)
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, jerror.New("Entry not found"))
		}
		return errors.Wrap(err, "could not get entry")
	}

	entry.Title = params.Title
	entry.Content = params.Content
	if err := h.db.Save(entry); err != nil {
		return errors.Wrap(err, "could not update entry")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"entry": entry,
	})
}

///// Delete
////
//

// Delete removes one entry of the current user.
func (h *entry) Delete(c echo.Context) error {
	err := h.db.DeleteEntryByUserID(c.Param("id"), currentUser(c).ID)
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, jerror.New("Entry not found"))
		}
		return errors.Wrap(err, "could not delete entry")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ok": true,
	})
}
