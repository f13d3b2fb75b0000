package errors

import (
	stderrors "errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error is an operational error with a caller-facing message and HTTP status.
// All domain failures (validation, auth, account state, not-found) are built
// with New and rendered by the centralized Handler; anything else is treated
// as an unexpected server error.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an operational error.
func New(message string, statusCode int) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

// Response is the JSON body returned for every error.
type Response struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// Handler returns the centralized Echo error handler. Operational errors are
// sent to the client as-is. Unexpected errors are logged and, outside of
// development mode, replaced with a generic message so internals never leak.
func Handler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		statusCode := http.StatusInternalServerError
		message := "Server Error"

		var appErr *Error
		var echoErr *echo.HTTPError
		switch {
		case stderrors.As(err, &appErr):
			statusCode = appErr.StatusCode
			message = appErr.Message
		case stderrors.As(err, &echoErr):
			// binding/validation errors raised by echo itself
			statusCode = echoErr.Code
			if m, ok := echoErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(echoErr.Code)
			}
		default:
			log.Printf("unexpected error: %v", err)
			if development {
				message = err.Error()
			}
		}

		if writeErr := c.JSON(statusCode, Response{Message: message, StatusCode: statusCode}); writeErr != nil {
			log.Printf("write error response: %v", writeErr)
		}
	}
}
