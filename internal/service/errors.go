package service

import (
	"errors"

	"irrigation_gateway/internal/retry"
)

// ErrInvalidArgument marks input rejected before any device call. It is never retried.
var ErrInvalidArgument = errors.New("invalid argument")

// errorDetail is the caller-facing error text. For exhausted retries it is the last
// device error verbatim, as the controller reported it.
func errorDetail(err error) string {
	var ex *retry.ExhaustedError
	if errors.As(err, &ex) && ex.Err != nil {
		return ex.Err.Error()
	}
	return err.Error()
}
