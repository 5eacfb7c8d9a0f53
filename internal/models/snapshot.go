package models

// Snapshot is a change captured at a named step of a scenario
type Snapshot struct {
	// Name of the step (e.g., "commit1_2")
	Name string
	// Change as parsed at that step
	Change Change
	// Depth is the indentation level in the report: 0 for a revision, 1 for its revisions over time
	Depth int
}

// NewSnapshot creates a new Snapshot
func NewSnapshot(name string, change Change, depth int) Snapshot {
	return Snapshot{
		Name:   name,
		Change: change,
		Depth:  depth,
	}
}
