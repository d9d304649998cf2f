// Package errs holds the typed errors shared by the domain and application
// layers.
//
// Every kind comes as a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrInvalidState) and a struct
// carrying the offending parameter. The struct unwraps to its sentinel, so
// callers match with errors.Is and read details with errors.As. The HTTP
// adapter maps the sentinels to status codes in one place.
package errs
