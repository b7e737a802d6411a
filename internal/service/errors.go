package service

import "errors"

// ValidationError is returned when caller input breaks a business rule.
// It never wraps a storage failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	ErrBlankUsername      = &ValidationError{Reason: "blank username"}
	ErrPasswordTooShort   = &ValidationError{Reason: "password too short"}
	ErrUsernameTaken      = &ValidationError{Reason: "username taken"}
	ErrBlankMessageText   = &ValidationError{Reason: "blank message text"}
	ErrMessageTextTooLong = &ValidationError{Reason: "message text too long"}
	ErrUnknownAccount     = &ValidationError{Reason: "account does not exist"}
	ErrMessageNotFound    = &ValidationError{Reason: "message does not exist"}
)

var (
	ErrDeleteFailed = errors.New("message delete affected no rows")
	ErrUpdateFailed = errors.New("message update affected no rows")
)
