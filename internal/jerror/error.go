package jerror

import "net/http"

type (
	// A JError represents the error format rendered by the daybook server.
	// It serializes as `{"error": "<message>"}`.
	JError struct {
		HTTPCode int    `json:"-"`
		Message  string `json:"error"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if jerr, ok := err.(*JError); ok && jerr.HTTPCode != 0 {
		return jerr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new JError with the given message.
func New(message string) *JError {
	return &JError{Message: message}
}

// NewWithCode returns a new JError with the given code and message.
func NewWithCode(code int, message string) *JError {
	return &JError{HTTPCode: code, Message: message}
}

// Error implements error interface.
func (e *JError) Error() string {
	return e.Message
}
