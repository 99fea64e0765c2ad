package apperror

import (
	"errors"
	"fmt"
)

// AppError is the error taxonomy shared by every module. Code is the stable
// wire identifier, Message is safe to show to clients and Err, when set, is the
// underlying cause kept for logs.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code, so a module sentinel such as ErrTimeOffNotFound also
// matches the generic ErrNotFound.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of e carrying err as its cause. Sentinels are
// shared, so they are never mutated.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return New(code, message, httpStatus).WithCause(err)
}

func As(err error, target **AppError) bool {
	return errors.As(err, target)
}
