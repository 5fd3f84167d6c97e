package todo

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is the only error the client returns. Message is what the
// user is shown.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (todo): %s", e.Op, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func newRequestError(op string, status int, serverMessage string, cause error) *RequestError {
	msg := serverMessage
	if msg == "" {
		switch {
		case cause != nil:
			msg = cause.Error()
		case status != 0:
			msg = fmt.Sprintf("request failed with status code %d", status)
		default:
			msg = "request failed"
		}
	}
	return &RequestError{
		Op:         op,
		StatusCode: status,
		Message:    msg,
		Err:        cause,
	}
}

// IsNotFound reports whether err is a RequestError for a 404 response.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

type apiErrorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Error   string `json:"error"`
}

func (b apiErrorBody) message() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Detail != "":
		return b.Detail
	default:
		return b.Error
	}
}
