package jj

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCommandFailed      = errors.New("jj command failed")
	ErrUnexpectedStatus   = errors.New("unexpected jj status output")
	ErrUnsupportedVersion = errors.New("unsupported jj version")
	ErrBinaryNotFound     = errors.New("jj binary not found")
)

// CommandError provides context for a failed jj invocation
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := "jj " + strings.Join(e.Args, " ")
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ParseError reports a status line that did not match the expected format
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnexpectedStatus, e.Line)
}

func (e *ParseError) Unwrap() error {
	return ErrUnexpectedStatus
}
