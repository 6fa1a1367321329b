package services

import "errors"

// Every service method either returns a fully populated value or fails with
// exactly one of these kinds. Handlers map them to HTTP statuses with
// errors.Is.
var (
	// ErrUnauthenticated covers missing, malformed and expired tokens as well
	// as tokens whose subject no longer exists. The cases are deliberately
	// indistinguishable to callers.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound means an id or email resolved to no stored record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means the caller supplied an empty or absent payload.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInternal masks unexpected storage failures. The underlying detail is
	// logged server-side and never reaches the caller.
	ErrInternal = errors.New("internal error")
)
