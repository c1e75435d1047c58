package biz

import "errors"

var (
	ErrInvalidJWT       = errors.New("invalid jwt token")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("server internal error, please try again later")
)

// reasonError keeps the policy's deny reason as the message while still
// matching its taxonomy sentinel through errors.Is.
type reasonError struct {
	reason string
	kind   error
}

func (e *reasonError) Error() string {
	return e.reason
}

func (e *reasonError) Is(target error) bool {
	return target == e.kind
}

func deniedError(reason string) error {
	return &reasonError{reason: reason, kind: ErrPermissionDenied}
}

func conflictError(reason string) error {
	return &reasonError{reason: reason, kind: ErrConflict}
}

func notFoundError(reason string) error {
	return &reasonError{reason: reason, kind: ErrNotFound}
}

func invalidInputError(reason string) error {
	return &reasonError{reason: reason, kind: ErrInvalidInput}
}
