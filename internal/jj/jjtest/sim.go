package jjtest

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/wahlandcase/baklab/internal/jj"
)

const rootLine = "zzzzzzzz 00000000 (empty) (no description set)"

type simChange struct {
	id    string
	hash  string
	desc  string
	empty bool
}

func (c simChange) line() string {
	desc := c.desc
	if desc == "" {
		desc = "(no description set)"
	}
	if c.empty {
		return fmt.Sprintf("%s %s (empty) %s", c.id, c.hash, desc)
	}
	return fmt.Sprintf("%s %s %s", c.id, c.hash, desc)
}

type simRepo struct {
	working simChange
	parent  *simChange
	content string
}

// Sim imitates the jj commands the scenario generator uses, one repository per
// directory. Change ids are handed out in order. A change of the tracked file on
// disk turns the working copy non-empty, like jj's working copy snapshot.
type Sim struct {
	// File is the tracked file name, relative to the repository
	File string

	mu     sync.Mutex
	repos  map[string]*simRepo
	ids    []string
	next   int
	hashes int
}

// NewSim creates a Sim that hands out the given change ids in order.
// It panics when the ids run out.
func NewSim(ids ...string) *Sim {
	return &Sim{
		File:  "bak.py",
		repos: make(map[string]*simRepo),
		ids:   ids,
	}
}

// Handler returns a Handler backed by the simulator
func (s *Sim) Handler() Handler {
	return s.handle
}

func (s *Sim) nextID() string {
	if s.next >= len(s.ids) {
		panic("jjtest: simulator ran out of change ids")
	}
	id := s.ids[s.next]
	s.next++
	return id
}

func (s *Sim) nextHash() string {
	s.hashes++
	return fmt.Sprintf("%08x", s.hashes*0x1f2e3d)
}

func (s *Sim) handle(call Call) (jj.Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(call.Args) == 0 {
		return jj.Output{}, fmt.Errorf("jjtest: empty command")
	}

	switch call.Args[0] {
	case "--version":
		return jj.Output{Stdout: "jj 0.24.0"}, nil
	case "git":
		s.repos[call.Dir] = &simRepo{
			working: simChange{id: s.nextID(), hash: s.nextHash(), empty: true},
		}
		return jj.Output{Stderr: "Initialized repo in \"" + call.Dir + "\""}, nil
	case "config":
		return jj.Output{}, nil
	}

	repo, ok := s.repos[call.Dir]
	if !ok {
		return jj.Output{}, &jj.CommandError{Args: call.Args, Stderr: "Error: There is no jj repo in \".\"", Err: jj.ErrCommandFailed}
	}

	switch call.Args[0] {
	case "st":
		s.snapshot(call.Dir, repo)
		return jj.Output{Stdout: "Working copy changes:\nA " + s.File + "\nWorking copy : " + repo.working.line() + "\nParent commit: " + s.parentLine(repo)}, nil
	case "describe":
		s.snapshot(call.Dir, repo)
		if len(call.Args) >= 3 {
			repo.working.desc = firstLine(call.Args[2])
		}
		repo.working.hash = s.nextHash()
		return jj.Output{Stderr: "Working copy now at: " + repo.working.line() + "\nParent commit      : " + s.parentLine(repo)}, nil
	case "new":
		s.snapshot(call.Dir, repo)
		prev := repo.working
		repo.parent = &prev
		repo.working = simChange{id: s.nextID(), hash: s.nextHash(), empty: true}
		return jj.Output{Stderr: "Working copy now at: " + repo.working.line() + "\nParent commit      : " + prev.line()}, nil
	}
	return jj.Output{}, fmt.Errorf("jjtest: unsupported command %q", call.Line())
}

func (s *Sim) parentLine(repo *simRepo) string {
	if repo.parent == nil {
		return rootLine
	}
	return repo.parent.line()
}

// snapshot mimics jj amending the working copy when the tracked file changed
func (s *Sim) snapshot(dir string, repo *simRepo) {
	data, err := os.ReadFile(filepath.Join(dir, s.File))
	if err != nil || string(data) == repo.content {
		return
	}
	repo.content = string(data)
	repo.working.empty = false
	repo.working.hash = s.nextHash()
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
