package service

import "errors"

// Check-in outcomes. ErrAlreadyCheckedIn is an expected everyday outcome, not
// a fault; callers surface it as a friendly notice and never log it as an
// error.
var (
	ErrExpired          = errors.New("check-in window has closed for today")
	ErrAlreadyCheckedIn = errors.New("already checked in today")
)

// InputError marks a user-input rejection. The interaction layer shows the
// message verbatim and mutates nothing.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func inputErrorf(msg string) error {
	return &InputError{Message: msg}
}

// IsInputError reports whether err is a user-input rejection.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
