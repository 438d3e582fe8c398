package domainerrors

import (
	"errors"
	"fmt"
)

// Code is the error kind surfaced to callers. httputil maps each kind to a status.
type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeValidation   Code = "validation_failed"
	CodeInternal     Code = "internal_error"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeTimeout      Code = "timeout"

	// Portal kinds. Callers branch on these to self-correct.
	CodeApplicationNotFound        Code = "application_not_found"
	CodeAccessRequestNotFound      Code = "access_request_not_found"
	CodeAccessRequestStatusInvalid Code = "access_request_status_invalid"
	CodeCredentialNotFound         Code = "credential_not_found"
	CodeCredentialLimitExceeded    Code = "credential_limit_exceeded"
	CodeTeamNotFound               Code = "team_not_found"
	CodeUpstream                   Code = "upstream_failure" // Identity gateway or store failure
)

type Error struct {
	Code    Code
	Message string
	Err     error

	// Set only for CodeUpstream.
	Operation   string
	Environment string
	Target      string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so errors.Is(err, &Error{Code: c}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches msg to err. A code already present in the chain wins over code.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// Upstream wraps a remote or store failure with the operation, environment and
// target it was issued for. A domain error that already carries a code is returned
// unchanged so validation kinds are never masked as upstream failures.
func Upstream(err error, op, env, target string) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	msg := fmt.Sprintf("%s failed", op)
	if env != "" {
		msg += " in " + env
	}
	if target != "" {
		msg += " for " + target
	}
	return &Error{
		Code:        CodeUpstream,
		Message:     msg,
		Err:         err,
		Operation:   op,
		Environment: env,
		Target:      target,
	}
}

// HasCode reports whether the first *Error in err's chain has code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsNotFound reports whether err carries any of the not-found kinds.
func IsNotFound(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case CodeNotFound, CodeApplicationNotFound, CodeAccessRequestNotFound,
		CodeCredentialNotFound, CodeTeamNotFound:
		return true
	default:
		return false
	}
}
