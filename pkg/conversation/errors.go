package conversation

import (
	"errors"
	"fmt"
)

var (
	ErrMissingNode      = errors.New("line does not exist")
	ErrMissingResponse  = errors.New("choice has no response")
	ErrInvalidSelection = errors.New("selection out of range")
)

// IntegrityError reports a script that cannot be followed: a response or
// choice that points at a missing line, or a choice without a response.
// It ends the conversation.
type IntegrityError struct {
	Line int
	Err  error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("dialog integrity: line %d: %v", e.Line, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }
