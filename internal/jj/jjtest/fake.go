// Package jjtest provides test doubles for the jj package.
package jjtest

import (
	"context"
	"strings"
	"sync"

	"github.com/wahlandcase/baklab/internal/jj"
)

// Call records a single command invocation
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line returns the command line without the binary name
func (c Call) Line() string {
	return strings.Join(c.Args, " ")
}

// Handler produces the result of a call
type Handler func(call Call) (jj.Output, error)

// Executor is a jj.Executor that records calls and delegates to Handler
type Executor struct {
	mu      sync.Mutex
	calls   []Call
	Handler Handler
}

// NewExecutor creates an Executor with the given handler
func NewExecutor(h Handler) *Executor {
	return &Executor{Handler: h}
}

// Run implements jj.Executor
func (e *Executor) Run(ctx context.Context, dir, name string, args ...string) (jj.Output, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	e.mu.Lock()
	e.calls = append(e.calls, call)
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return jj.Output{}, err
	}
	if e.Handler == nil {
		return jj.Output{}, nil
	}
	return e.Handler(call)
}

// Calls returns a copy of the recorded calls
func (e *Executor) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Lines returns the recorded command lines
func (e *Executor) Lines() []string {
	calls := e.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Line()
	}
	return lines
}
