package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Attempt is one pass of the scenario generator over a fresh scratch repository
type Attempt struct {
	// RunID groups the attempts of a single generator run
	RunID uuid.UUID
	// Number is 1-based
	Number int
	// Dir is the scratch repository directory
	Dir string
	// Snapshots in report order
	Snapshots []Snapshot
	// ChangeIDs are the ids compared by the stop condition
	ChangeIDs []string
	// Stopped is true when this attempt ended the loop
	Stopped bool
	// Failed is true when a jj command failed part way through the attempt
	Failed bool
	// Kept is true when Dir was left on disk
	Kept bool
	// Duration of the attempt
	Duration time.Duration
}

// Snapshot returns the snapshot with the given name
func (a Attempt) Snapshot(name string) (Snapshot, bool) {
	return lo.Find(a.Snapshots, func(s Snapshot) bool {
		return s.Name == name
	})
}
