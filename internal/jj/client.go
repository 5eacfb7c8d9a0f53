package jj

import (
	"context"

	"github.com/wahlandcase/baklab/internal/models"

	"go.uber.org/zap"
)

// DefaultBinary is the jj executable looked up in PATH
const DefaultBinary = "jj"

// ConfigScope selects where "jj config set" writes
type ConfigScope string

const (
	ScopeRepo ConfigScope = "--repo"
	ScopeUser ConfigScope = "--user"
)

// Client runs jj commands inside a single repository directory
type Client struct {
	executor Executor
	binary   string
	dir      string
	logger   *zap.Logger
}

// NewClient creates a Client for the repository at dir
func NewClient(executor Executor, binary, dir string, logger *zap.Logger) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		executor: executor,
		binary:   binary,
		dir:      dir,
		logger:   logger,
	}
}

// Dir returns the repository directory
func (c *Client) Dir() string {
	return c.dir
}

// Run runs an arbitrary jj subcommand
func (c *Client) Run(ctx context.Context, args ...string) (Output, error) {
	return c.executor.Run(ctx, c.dir, c.binary, args...)
}

// Init creates a new git-backed jj repository in the client directory
func (c *Client) Init(ctx context.Context) error {
	_, err := c.Run(ctx, "git", "init")
	return err
}

// ConfigSet sets a configuration value in the given scope
func (c *Client) ConfigSet(ctx context.Context, scope ConfigScope, key, value string) error {
	_, err := c.Run(ctx, "config", "set", string(scope), key, value)
	return err
}

// Status runs "jj st" and returns the parent and working copy changes
func (c *Client) Status(ctx context.Context) (parent, working models.Change, err error) {
	out, err := c.Run(ctx, "st")
	if err != nil {
		return models.Change{}, models.Change{}, err
	}
	return ParseStatusPair(out.Stdout)
}

// Describe sets the description of the working copy change.
// jj reports the rewritten working copy and its parent on stderr.
func (c *Client) Describe(ctx context.Context, message string, resetAuthor bool) (parent, working models.Change, err error) {
	args := []string{"describe", "-m", message}
	if resetAuthor {
		args = append(args, "--reset-author")
	}

	out, err := c.Run(ctx, args...)
	if err != nil {
		return models.Change{}, models.Change{}, err
	}
	return ParseStatusPair(out.Stderr)
}

// New starts a new change on top of the working copy and returns it
func (c *Client) New(ctx context.Context) (models.Change, error) {
	out, err := c.Run(ctx, "new")
	if err != nil {
		return models.Change{}, err
	}

	change, err := ParseNewChange(out.Stderr)
	if err != nil {
		return models.Change{}, err
	}
	c.logger.Debug("created change",
		zap.String("change_id", change.ChangeID),
		zap.String("commit_hash", change.CommitHash))
	return change, nil
}
