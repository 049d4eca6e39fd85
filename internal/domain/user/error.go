package user

import "errors"

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidAuth  = errors.New("invalid email or password")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("user already exists with this email")
)

// DomainError carries a caller-facing message while still matching its sentinel via errors.Is.
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func invalid(msg string) error {
	return &DomainError{Err: ErrInvalidInput, Message: msg}
}
