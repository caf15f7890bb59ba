package libdaybook

import (
	"encoding/json"
	"io"
)

// An APIError reprensents an HTTP error returned by the Daybook server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func parseAPIError(r io.Reader, code int) error {
	var apierr APIError
	dec := json.NewDecoder(r)
	if err := dec.Decode(&apierr); err != nil {
		return err
	}
	apierr.StatusCode = code
	return &apierr
}

func (e *APIError) Error() string {
	return e.Message
}
