package source

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Runner executes the history binary in dir and returns its stdout.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// GitConfig controls the history lookup.
type GitConfig struct {
	Dir     string
	Binary  string
	Timeout time.Duration
	// Retries is the number of extra attempts after a transient failure.
	Retries int
}

// GitOption customises a GitResolver.
type GitOption func(*GitResolver)

// WithRunner replaces the exec based runner.
func WithRunner(runner Runner) GitOption {
	return func(g *GitResolver) {
		if runner != nil {
			g.run = runner
			g.custom = true
		}
	}
}

// WithRetryInterval sets the constant wait between attempts.
func WithRetryInterval(interval time.Duration) GitOption {
	return func(g *GitResolver) {
		if interval >= 0 {
			g.interval = interval
		}
	}
}

// WithGitLogger sets the logger used for degraded lookups.
func WithGitLogger(logger interfaces.Logger) GitOption {
	return func(g *GitResolver) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// GitResolver asks version control for the last commit that touched a file.
type GitResolver struct {
	cfg      GitConfig
	run      Runner
	custom   bool
	interval time.Duration
	logger   interfaces.Logger

	lookOnce  sync.Once
	available bool
}

// NewGitResolver returns a resolver running `<binary> -C <dir> log -1
// --format=%cI -- <name>`.
func NewGitResolver(cfg GitConfig, opts ...GitOption) *GitResolver {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = "git"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	g := &GitResolver{
		cfg:      cfg,
		interval: 100 * time.Millisecond,
		logger:   logging.NoOp(),
	}
	g.run = g.execRunner
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ResolveDate never fails: every error is logged at debug level and
// reported as no answer.
func (g *GitResolver) ResolveDate(ctx context.Context, name string) (time.Time, bool) {
	if g == nil || !g.binaryAvailable() {
		return time.Time{}, false
	}

	queryCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	output, err := backoff.Retry(queryCtx, func() ([]byte, error) {
		out, runErr := g.run(queryCtx, g.cfg.Dir, "log", "-1", "--format=%cI", "--", name)
		if runErr != nil && !transient(queryCtx, runErr) {
			return nil, backoff.Permanent(runErr)
		}
		return out, runErr
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(g.interval)),
		backoff.WithMaxTries(uint(g.cfg.Retries)+1),
		backoff.WithMaxElapsedTime(g.cfg.Timeout),
	)
	if err != nil {
		g.logger.Debug("source.git.failed", "file", name, "error", err)
		return time.Time{}, false
	}

	modified, err := ParseCommitDate(output)
	if err != nil {
		g.logger.Debug("source.git.unparsable", "file", name, "error", err)
		return time.Time{}, false
	}
	return modified, true
}

// ParseCommitDate parses the strict ISO-8601 committer date printed by
// %cI. Empty output means the file has no history.
func ParseCommitDate(output []byte) (time.Time, error) {
	value := strings.TrimSpace(string(output))
	if value == "" {
		return time.Time{}, errors.New("no commit history")
	}
	// multi-line output only happens with unusual git configs; keep the first
	if idx := strings.IndexByte(value, '\n'); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse commit date %q: %w", value, err)
	}
	return parsed, nil
}

func (g *GitResolver) binaryAvailable() bool {
	if g.custom {
		return true
	}
	g.lookOnce.Do(func() {
		_, err := exec.LookPath(g.cfg.Binary)
		g.available = err == nil
		if err != nil {
			g.logger.Debug("source.git.unavailable", "binary", g.cfg.Binary, "error", err)
		}
	})
	return g.available
}

func (g *GitResolver) execRunner(ctx context.Context, dir string, args ...string) ([]byte, error) {
	full := append([]string{"-C", dir}, args...)
	return exec.CommandContext(ctx, g.cfg.Binary, full...).Output()
}

// transient reports whether an attempt is worth repeating. A non-zero exit
// means git answered and a second run will say the same.
func transient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false
	}
	return !errors.Is(err, exec.ErrNotFound)
}
