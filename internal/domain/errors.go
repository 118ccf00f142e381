package domain

import "errors"

var (
	// ErrIncompleteSubmission is returned when a submission does not answer every catalog question.
	ErrIncompleteSubmission = errors.New("incomplete submission")
	// ErrResultNotFound is returned when a session has no stored result.
	ErrResultNotFound = errors.New("result not found")
)
