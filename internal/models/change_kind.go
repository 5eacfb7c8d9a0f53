package models

// ChangeKind identifies which line of jj output a change was read from
type ChangeKind int

const (
	// WorkingCopy is the "Working copy" / "Working copy now at" line
	WorkingCopy ChangeKind = iota
	// ParentCommit is the "Parent commit" line
	ParentCommit
)

// Label returns the label jj prints in front of the change
func (k ChangeKind) Label() string {
	switch k {
	case WorkingCopy:
		return "Working copy"
	case ParentCommit:
		return "Parent commit"
	default:
		return ""
	}
}

func (k ChangeKind) String() string {
	switch k {
	case WorkingCopy:
		return "working-copy"
	case ParentCommit:
		return "parent"
	default:
		return "unknown"
	}
}
