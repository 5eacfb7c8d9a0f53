package git

import "errors"

var (
	ErrStoreNotFound  = errors.New("git store not found")
	ErrCommitNotFound = errors.New("commit not found")
	ErrAmbiguousHash  = errors.New("ambiguous commit hash")
)
