package jj

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// MinimumVersion is the oldest jj release with "jj git init"
const MinimumVersion = "0.15.0"

var versionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+[0-9A-Za-z.+-]*)`)

// ParseVersion extracts the version from "jj --version" output (e.g., "jj 0.24.0-abc123")
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindString(output)
	if m == "" {
		return nil, fmt.Errorf("%w: no version in %q", ErrUnsupportedVersion, output)
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedVersion, err)
	}
	return v, nil
}

// Version returns the version of the jj binary
func (c *Client) Version(ctx context.Context) (*semver.Version, error) {
	out, err := c.Run(ctx, "--version")
	if err != nil {
		return nil, err
	}
	return ParseVersion(out.Stdout)
}

// CheckVersion fails with ErrUnsupportedVersion if jj is older than minimum.
// An empty minimum uses MinimumVersion.
func (c *Client) CheckVersion(ctx context.Context, minimum string) (*semver.Version, error) {
	if minimum == "" {
		minimum = MinimumVersion
	}
	floor, err := semver.NewVersion(minimum)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid minimum %q: %w", ErrUnsupportedVersion, minimum, err)
	}

	v, err := c.Version(ctx)
	if err != nil {
		return nil, err
	}
	// Pre-release builds of a release satisfy that release.
	core, _ := semver.NewVersion(fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch()))
	if core.LessThan(floor) {
		return v, fmt.Errorf("%w: %s is older than %s", ErrUnsupportedVersion, v, floor)
	}
	return v, nil
}
