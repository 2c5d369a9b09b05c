// Package errs defines the coded domain errors shared by the registries and the loan coordinator.
package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindStateConflict Kind = "state_conflict"
	KindValidation    Kind = "validation"
)

// Error is a business error. Two errors match under errors.Is when their codes match,
// so a specific message can be attached without losing the sentinel identity.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

var (
	ErrUserNotFound = &Error{Kind: KindNotFound, Code: "user_not_found", Message: "user not found"}
	ErrBookNotFound = &Error{Kind: KindNotFound, Code: "book_not_found", Message: "book not found"}
	ErrLoanNotFound = &Error{Kind: KindNotFound, Code: "loan_not_found", Message: "loan not found"}

	ErrUserBlocked        = &Error{Kind: KindStateConflict, Code: "user_blocked", Message: "user is blocked"}
	ErrBookUnavailable    = &Error{Kind: KindStateConflict, Code: "book_unavailable", Message: "book unavailable, stock is zero"}
	ErrLoanAlreadyExists  = &Error{Kind: KindStateConflict, Code: "loan_already_exists", Message: "book already lent to this user"}
	ErrLoanIDTaken        = &Error{Kind: KindStateConflict, Code: "loan_id_taken", Message: "loan id already used"}
	ErrLoanNotActive      = &Error{Kind: KindStateConflict, Code: "loan_not_active", Message: "loan is not active"}
	ErrUserAlreadyExists  = &Error{Kind: KindStateConflict, Code: "user_already_exists", Message: "user already exists"}
	ErrBookAlreadyExists  = &Error{Kind: KindStateConflict, Code: "book_already_exists", Message: "book already exists"}
	ErrUserHasActiveLoans = &Error{Kind: KindStateConflict, Code: "user_has_active_loans", Message: "user has active loans"}

	ErrValidation = &Error{Kind: KindValidation, Code: "validation_failed", Message: "validation failed"}
)

// New copies base with a formatted message.
func New(base *Error, format string, args ...any) *Error {
	return &Error{Kind: base.Kind, Code: base.Code, Message: fmt.Sprintf(format, args...)}
}

// Wrap copies base and attaches cause, e.g. a validate.Errs list.
func Wrap(base *Error, cause error) *Error {
	return &Error{Kind: base.Kind, Code: base.Code, Message: base.Message, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or "" for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
