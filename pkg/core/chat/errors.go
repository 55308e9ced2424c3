package chat

import (
	"errors"
	"fmt"
)

// UserError is a problem with the user's own input (empty, too long, missing
// subject). It is reported verbatim to the user and ends the turn cleanly.
type UserError struct {
	Msg string
}

func (e *UserError) Error() string { return e.Msg }

// NewUserError builds a user-facing input error.
func NewUserError(format string, args ...interface{}) *UserError {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// AsUserError reports whether err is (or wraps) a UserError.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// Fixed user-facing strings. The upstream apology is deliberately generic;
// detail goes to the log, never to the user.
const (
	MsgNotUnderstood = "I'm sorry, I didn't understand your request. Can you specify which feature you'd like to use?"
	MsgUpstreamError = "An error occurred while processing your request. Please try again later."
	MsgUnexpected    = "An unexpected error occurred. Please try again later."
	MsgWhatElse      = "Alright, what else would you like to do?"
)
