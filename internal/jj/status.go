package jj

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wahlandcase/baklab/internal/models"
)

// statusPattern matches the change lines printed by "jj st", "jj describe" and "jj new":
//
//	Working copy : xvpztrxr 26d5ff49 (empty) (no description set)
//	Working copy now at: mnxsqnnr 713abd34 ok
//	Parent commit      : zzzzzzzz 00000000 (empty) (no description set)
//
// Newer jj releases add "(@)" after the working copy label and "(@-)" after the
// parent label. Only the working copy line says "now at".
var statusPattern = regexp.MustCompile(
	`^(Working copy(?:\s*\(@\))?(?:\s*now at)?|Parent commit(?:\s*\(@-\))?)\s*: ([a-z0-9]+) ([a-z0-9]+) (\(empty\) )?(.*)`,
)

// ParseStatusLine parses a single change line
func ParseStatusLine(line string) (models.Change, error) {
	m := statusPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return models.Change{}, &ParseError{Line: line}
	}

	kind := models.WorkingCopy
	if strings.HasPrefix(m[1], models.ParentCommit.Label()) {
		kind = models.ParentCommit
	}

	return models.NewChange(kind, m[2], m[3], m[5], m[4] != ""), nil
}

// ParseStatusPair parses the last two lines of jj output: the working copy
// line followed by the parent commit line.
func ParseStatusPair(text string) (parent, working models.Change, err error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return models.Change{}, models.Change{}, fmt.Errorf("%w: expected at least 2 lines, got %d", ErrUnexpectedStatus, len(lines))
	}

	parent, err = ParseStatusLine(lines[len(lines)-1])
	if err != nil {
		return models.Change{}, models.Change{}, err
	}
	working, err = ParseStatusLine(lines[len(lines)-2])
	if err != nil {
		return models.Change{}, models.Change{}, err
	}
	return parent, working, nil
}

// ParseNewChange parses the output of "jj new", where the new working copy is
// reported on the second-to-last line.
func ParseNewChange(text string) (models.Change, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return models.Change{}, fmt.Errorf("%w: expected at least 2 lines, got %d", ErrUnexpectedStatus, len(lines))
	}
	return ParseStatusLine(lines[len(lines)-2])
}
