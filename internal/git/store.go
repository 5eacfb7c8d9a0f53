// Package git reads the git object store that backs a jj repository.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/wahlandcase/baklab/internal/models"
)

// noDescription is what jj prints for a change without a description
const noDescription = "(no description set)"

// Store is an open git repository backing a jj repository
type Store struct {
	path string
	repo *git.Repository
}

// FindStore returns the git directory used by the jj repository at dir.
// jj records it in .jj/repo/store/git_target, relative to the store directory;
// without that file a colocated .git directory is used.
func FindStore(dir string) (string, error) {
	storeDir := filepath.Join(dir, ".jj", "repo", "store")

	target, err := os.ReadFile(filepath.Join(storeDir, "git_target"))
	if err == nil {
		p := strings.TrimSpace(string(target))
		if !filepath.IsAbs(p) {
			p = filepath.Join(storeDir, p)
		}
		return filepath.Clean(p), nil
	}

	for _, candidate := range []string{filepath.Join(storeDir, "git"), filepath.Join(dir, ".git")} {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrStoreNotFound, dir)
}

// OpenStore opens the git store of the jj repository at dir
func OpenStore(dir string) (*Store, error) {
	path, err := FindStore(dir)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: false})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStoreNotFound, path, err)
	}
	return &Store{path: path, repo: repo}, nil
}

// Path returns the git directory
func (s *Store) Path() string {
	return s.path
}

// Lookup finds the commit whose hash starts with prefix
func (s *Store) Lookup(prefix string) (*models.StoredCommit, error) {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("%w: empty hash", ErrCommitNotFound)
	}

	iter, err := s.repo.CommitObjects()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var found *object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if !strings.HasPrefix(c.Hash.String(), prefix) {
			return nil
		}
		if found != nil && found.Hash != c.Hash {
			return fmt.Errorf("%w: %s", ErrAmbiguousHash, prefix)
		}
		found = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrCommitNotFound, prefix)
	}

	return &models.StoredCommit{
		Hash:    found.Hash.String(),
		Author:  found.Author.Name,
		Email:   found.Author.Email,
		Subject: strings.TrimSpace(strings.SplitN(found.Message, "\n", 2)[0]),
		When:    found.Author.When,
	}, nil
}

// Mismatch describes a snapshot that disagrees with the git store
type Mismatch struct {
	Snapshot models.Snapshot
	Reason   string
}

// Verify checks that each snapshot's commit exists in the store with the same
// description. The root commit is skipped.
func (s *Store) Verify(snapshots []models.Snapshot) []Mismatch {
	var mismatches []Mismatch
	for _, snap := range snapshots {
		if snap.Change.IsRoot() {
			continue
		}

		commit, err := s.Lookup(snap.Change.CommitHash)
		if err != nil {
			mismatches = append(mismatches, Mismatch{Snapshot: snap, Reason: err.Error()})
			continue
		}

		want := snap.Change.Description
		if want == noDescription {
			want = ""
		}
		if commit.Subject != want {
			mismatches = append(mismatches, Mismatch{
				Snapshot: snap,
				Reason:   fmt.Sprintf("description %q, store has %q", want, commit.Subject),
			})
		}
	}
	return mismatches
}
