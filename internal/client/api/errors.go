package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates the remote service could not be reached at all
// (DNS failure, refused connection, timeout). Callers treat it as the
// "no connectivity" failure class and hand writes to the offline queue.
var ErrUnavailable = errors.New("remote service unavailable")

// RemoteError is a non-2xx response from the remote service
type RemoteError struct {
	Code    string
	Message string
	Status  int
}

// Error implements error
func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote error (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("remote error (%d): %s", e.Status, e.Message)
}

// Transient reports whether the error is worth retrying.
// Server-side failures are, client-side rejections are not.
func (e *RemoteError) Transient() bool {
	return e.Status >= 500
}

// IsUnavailable reports whether err is a connectivity failure
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsRejection reports whether err is a validation/authorization rejection
// that must not be retried
func IsRejection(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && !re.Transient()
}

// IsTransient reports whether err may succeed on retry
func IsTransient(err error) bool {
	if IsUnavailable(err) {
		return true
	}
	var re *RemoteError
	return errors.As(err, &re) && re.Transient()
}
