package adapter

import "errors"

var (
	// ErrPasswordTooLong is returned by Register before any network call
	// when the password exceeds MaxPasswordLength.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")

	// ErrInvalidCredentials is returned by Login when the auth service
	// rejects the username/password pair.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned by Register when the auth service
	// reports the username as already registered.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUnauthorized is returned by every notes call answered with 401.
	// It is terminal for the current session: the token store has already
	// been cleared by the time the caller sees it.
	ErrUnauthorized = errors.New("client unauthorized")

	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)
