package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest categorizes err as an illegal-argument failure. Such a
// request must be fixed by the client; retrying it unchanged is futile.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// Authentication categorizes err as a missing/invalid credentials
// failure.
func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

// Authorization categorizes err as a failed authorization predicate.
func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

// NotFound categorizes err as referring to an absent entity.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// IsNotFound reports whether err is categorized as a NotFound error
// somewhere in its chain.
func IsNotFound(err error) bool {
	var ce *Error
	return errors.As(err, &ce) &&
		ce.HTTPStatusCode == http.StatusNotFound
}

// IsConflict reports whether err is categorized as a Conflict error
// somewhere in its chain.
func IsConflict(err error) bool {
	var ce *Error
	return errors.As(err, &ce) &&
		ce.HTTPStatusCode == http.StatusConflict
}

// IsInternal reports whether err carries no category at all, that is,
// it represents an unexpected lower-level failure. Such errors may be
// retried by the caller and must never expose internal details to the
// end user. No component may downgrade a categorized error to an
// internal one except at the outermost transport boundary.
func IsInternal(err error) bool {
	var ce *Error
	return !errors.As(err, &ce)
}
