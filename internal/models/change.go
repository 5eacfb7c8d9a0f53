package models

import "strings"

// Change is a revision as jj reports it on a status line
type Change struct {
	// Kind tells which status line the change came from
	Kind ChangeKind
	// ChangeID is the short change identifier (e.g., "xvpztrxr")
	ChangeID string
	// CommitHash is the short commit hash (e.g., "26d5ff49")
	CommitHash string
	// Description is the first line of the description, "(no description set)" if none
	Description string
	// Empty is true when jj marked the revision "(empty)"
	Empty bool
}

// NewChange creates a new Change
func NewChange(kind ChangeKind, changeID, commitHash, description string, empty bool) Change {
	return Change{
		Kind:        kind,
		ChangeID:    changeID,
		CommitHash:  commitHash,
		Description: description,
		Empty:       empty,
	}
}

// Initial returns the first letter of the change id, 0 if the id is empty
func (c Change) Initial() byte {
	if c.ChangeID == "" {
		return 0
	}
	return c.ChangeID[0]
}

// IsRoot reports whether this is jj's all-zero root commit
func (c Change) IsRoot() bool {
	return c.CommitHash != "" && strings.Trim(c.CommitHash, "0") == ""
}

func (c Change) String() string {
	parts := []string{c.ChangeID, c.CommitHash}
	if c.Empty {
		parts = append(parts, "(empty)")
	}
	parts = append(parts, c.Description)
	return strings.Join(parts, " ")
}
