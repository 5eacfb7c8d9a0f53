package models

import "time"

// StoredCommit is a commit object read from the git store behind a jj repository
type StoredCommit struct {
	// Hash is the full commit hash
	Hash string
	// Author name and email
	Author string
	Email  string
	// Subject is the first line of the commit message
	Subject string
	When    time.Time
}
