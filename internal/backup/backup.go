// Package backup copies files next to themselves with a ".bak" suffix.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Suffix is appended to the source path to form the backup path
const Suffix = ".bak"

var ErrNotRegular = errors.New("not a regular file")

// Result describes a finished backup
type Result struct {
	Source string
	Target string
	Bytes  int64
}

// TargetPath returns the backup path for src
func TargetPath(src string) string {
	return src + Suffix
}

// Backup copies src to src+".bak" byte for byte, replacing any previous backup
func Backup(src string) (Result, error) {
	dst := TargetPath(src)

	n, err := copyFile(src, dst)
	if err != nil {
		return Result{}, fmt.Errorf("backup %s: %w", src, err)
	}

	return Result{Source: src, Target: dst, Bytes: n}, nil
}

// BackupAll backs up every path in order. It keeps going after a failure and
// returns the results that succeeded along with all errors joined.
func BackupAll(paths []string) ([]Result, error) {
	var (
		results []Result
		errs    []error
	)
	for _, p := range paths {
		r, err := Backup(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, r)
	}
	return results, errors.Join(errs...)
}

// copyFile copies src to dst with the source permissions
func copyFile(src, dst string) (int64, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, ErrNotRegular
	}

	// Create temp file in same directory as dst for atomic replace
	tmpFile, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+"-*")
	if err != nil {
		return 0, err
	}
	tmpPath := tmpFile.Name()

	n, err := io.Copy(tmpFile, srcFile)
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return 0, err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	return n, nil
}
