package handerr

import (
	"errors"
	"fmt"
)

// Kind classifies why a hand could not be settled
type Kind string

// error kinds
const (
	ValidationError    Kind = "ValidationError"
	MalformedAction    Kind = "MalformedAction"
	InvalidAmount      Kind = "InvalidAmount"
	InvalidBoardLength Kind = "InvalidBoardLength"
	InvalidCardFormat  Kind = "InvalidCardFormat"
	DuplicateCard      Kind = "DuplicateCard"
	RuleViolation      Kind = "RuleViolation"
)

// Error is a settlement failure that is safe to return to a caller
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New returns an error of the provided kind
func New(kind Kind, format string, a ...interface{}) error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, a...),
	}
}

// KindOf returns the kind of err, or an empty Kind if err did not originate here
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return ""
}

// Is returns true if err is a settlement error of the provided kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
