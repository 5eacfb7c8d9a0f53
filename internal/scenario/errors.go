package scenario

import "errors"

var (
	ErrAttemptsExhausted = errors.New("no attempt met the stop condition")
	ErrSetupFailed       = errors.New("scratch repository setup failed")
)
