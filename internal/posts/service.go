package posts

import (
	"context"
	"sync"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// IndexBuilder produces the posts a snapshot is made of.
type IndexBuilder interface {
	BuildAll(ctx context.Context) ([]interfaces.Post, *BuildReport, error)
}

// Service answers post queries from the current snapshot. The first query
// builds it; Refresh replaces it.
type Service struct {
	builder IndexBuilder
	logger  interfaces.Logger

	// build serialises builds so concurrent first callers share one.
	build sync.Mutex

	mu     sync.RWMutex
	index  *Index
	report *BuildReport
}

var _ interfaces.PostService = (*Service)(nil)

// NewService wires a Service to builder. Nothing is read until the first
// query.
func NewService(builder IndexBuilder, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{builder: builder, logger: logger}
}

// AllSorted returns every post, newest first, undated posts last.
func (s *Service) AllSorted(ctx context.Context) ([]interfaces.Post, error) {
	idx, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return idx.All(), nil
}

// GetBySlug returns one post or an error matching interfaces.ErrNotFound.
func (s *Service) GetBySlug(ctx context.Context, slug string) (interfaces.Post, error) {
	idx, err := s.snapshot(ctx)
	if err != nil {
		return interfaces.Post{}, err
	}
	return idx.Get(slug)
}

// GetAdjacent returns the positional neighbours of slug.
func (s *Service) GetAdjacent(ctx context.Context, slug string) (interfaces.Adjacent, error) {
	idx, err := s.snapshot(ctx)
	if err != nil {
		return interfaces.Adjacent{}, err
	}
	return idx.Adjacent(slug)
}

// ListSlugs returns the slugs in AllSorted order.
func (s *Service) ListSlugs(ctx context.Context) ([]string, error) {
	idx, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Slugs(), nil
}

// Report returns the report of the build behind the current snapshot, or
// nil before the first build.
func (s *Service) Report() *BuildReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Refresh rebuilds from scratch. On failure the previous snapshot stays in
// place.
func (s *Service) Refresh(ctx context.Context) error {
	s.build.Lock()
	defer s.build.Unlock()
	_, err := s.rebuild(ctx)
	return err
}

func (s *Service) current() *Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

func (s *Service) snapshot(ctx context.Context) (*Index, error) {
	if idx := s.current(); idx != nil {
		return idx, nil
	}

	s.build.Lock()
	defer s.build.Unlock()
	if idx := s.current(); idx != nil {
		return idx, nil
	}
	return s.rebuild(ctx)
}

// rebuild must be called with s.build held.
func (s *Service) rebuild(ctx context.Context) (*Index, error) {
	posts, report, err := s.builder.BuildAll(ctx)
	if err != nil {
		s.logger.Error("posts.snapshot.build_failed", "error", err)
		return nil, err
	}
	idx := NewIndex(posts)

	s.mu.Lock()
	s.index = idx
	s.report = report
	s.mu.Unlock()

	s.logger.Debug("posts.snapshot.swapped", "posts", idx.Len())
	return idx, nil
}
