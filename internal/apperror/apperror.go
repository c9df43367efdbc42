package apperror

import (
	"errors"
	"fmt"
)

// Kind is the stable, machine-readable error class surfaced to callers.
type Kind string

const (
	KindValidation          Kind = "VALIDATION"
	KindNotFound            Kind = "NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
	KindConflict            Kind = "CONFLICT"
	KindPreconditionFailed  Kind = "PRECONDITION_FAILED"
	KindUpstreamUnavailable Kind = "UPSTREAM_UNAVAILABLE"
	KindRateLimited         Kind = "RATE_LIMITED"
	KindInternal            Kind = "INTERNAL"
)

// Codes narrow a Kind down to the specific engine condition.
const (
	CodeValidation          = "VALIDATION"
	CodeNotFound            = "NOT_FOUND"
	CodeForbidden           = "FORBIDDEN"
	CodeNoGenerator         = "NO_GENERATOR"
	CodeNotConfigured       = "NOT_CONFIGURED"
	CodeUpstream            = "UPSTREAM_UNAVAILABLE"
	CodeAlreadySubmitted    = "ALREADY_SUBMITTED"
	CodeAlreadyApplied      = "ALREADY_APPLIED"
	CodeStartConflict       = "START_CONFLICT"
	CodeAssessmentNotPassed = "ASSESSMENT_NOT_PASSED"
	CodeSkillsNotVerified   = "SKILLS_NOT_VERIFIED"
	CodeLowMatch            = "LOW_MATCH"
	CodeInternal            = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by Code, so callers can compare against sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, CodeValidation, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, CodeNotFound, fmt.Sprintf(format, args...))
}

func Forbidden(format string, args ...any) *Error {
	return New(KindForbidden, CodeForbidden, fmt.Sprintf(format, args...))
}

func Internal(message string, err error) *Error {
	return Wrap(KindInternal, CodeInternal, message, err)
}

// KindOf reports the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf reports the Code of err, or CodeInternal when err is not an *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
