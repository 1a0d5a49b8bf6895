package source

import (
	"context"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultPattern matches every Markdown file.
const DefaultPattern = "*.md"

// Config selects the posts directory.
type Config struct {
	Dir     string
	Pattern string
}

// Option customises a Reader.
type Option func(*Reader)

// WithFS reads from fsys instead of os.DirFS(cfg.Dir).
func WithFS(fsys fs.FS) Option {
	return func(r *Reader) {
		if fsys != nil {
			r.fsys = fsys
		}
	}
}

// WithDateChain replaces the default filesystem only chain.
func WithDateChain(chain *DateChain) Option {
	return func(r *Reader) {
		if chain != nil {
			r.dates = chain
		}
	}
}

// WithLogger sets the reader logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Reader lists, reads and dates the Markdown files of one directory.
type Reader struct {
	dir     string
	pattern string
	fsys    fs.FS
	dates   *DateChain
	logger  interfaces.Logger
}

// NewReader builds a Reader. Without WithDateChain only the filesystem
// modification time is consulted.
func NewReader(cfg Config, opts ...Option) *Reader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = DefaultPattern
	}
	r := &Reader{
		dir:     cfg.Dir,
		pattern: pattern,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fsys == nil {
		r.fsys = os.DirFS(cfg.Dir)
	}
	if r.dates == nil {
		r.dates = NewDateChain(r.logger, DateStep{
			Source:   interfaces.DateSourceFilesystem,
			Resolver: NewFileInfoResolver(r.fsys, r.logger),
		})
	}
	return r
}

// Dir returns the configured directory.
func (r *Reader) Dir() string {
	return r.dir
}

// FS exposes the filesystem the reader uses.
func (r *Reader) FS() fs.FS {
	return r.fsys
}

// ListFiles returns the names of the matching files directly inside the
// directory, in lexical order. Sub-directories are never entered.
func (r *Reader) ListFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		r.logger.Error("source.list.failed", "dir", r.dir, "error", err)
		return nil, sourceUnavailable(r.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !r.matches(entry.Name()) {
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := fs.Stat(r.fsys, entry.Name())
			if statErr != nil || !info.Mode().IsRegular() {
				continue
			}
		} else if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}

	r.logger.Debug("source.list.completed", "dir", r.dir, "files", len(names))
	return names, nil
}

// ReadRaw returns the full text of name. A file removed since listing
// yields an error matching interfaces.ErrNotFound.
func (r *Reader) ReadRaw(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return "", readFailure(name, err)
	}
	return string(data), nil
}

// ResolveDate runs the date fallback chain for name.
func (r *Reader) ResolveDate(ctx context.Context, name string) (time.Time, interfaces.DateSource, bool) {
	return r.dates.Resolve(ctx, name)
}

func (r *Reader) matches(name string) bool {
	ok, err := path.Match(r.pattern, name)
	return err == nil && ok
}
