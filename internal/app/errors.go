package app

import (
	"errors"
	"fmt"
)

// MissingMessageError is returned when no commit message was given.
type MissingMessageError struct{}

func (e *MissingMessageError) Error() string {
	return "please provide a commit message"
}

// TooManyArgumentsError is returned when the message was not quoted.
type TooManyArgumentsError struct {
	Count int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("expected one commit message argument but got %d (quote the message)", e.Count)
}

// isUsageError reports whether err means the command line itself was wrong.
func isUsageError(err error) bool {
	var missing *MissingMessageError
	var tooMany *TooManyArgumentsError
	return errors.As(err, &missing) || errors.As(err, &tooMany)
}
