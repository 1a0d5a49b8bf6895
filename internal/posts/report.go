package posts

import (
	"maps"
	"slices"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// BuildReport describes one build: what was read, where dates came from
// and which files were left out.
type BuildReport struct {
	BuildID    string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      int
	Posts      int

	mu           sync.Mutex
	dateSources  map[interfaces.DateSource]int
	untitled     []string
	invalidSlugs []string
	failures     *goerrors.ErrorCollector
}

func newBuildReport(id string, started time.Time, files int) *BuildReport {
	return &BuildReport{
		BuildID:     id,
		StartedAt:   started,
		Files:       files,
		dateSources: map[interfaces.DateSource]int{},
		failures:    goerrors.NewCollector(goerrors.WithMaxErrors(files + 1)),
	}
}

// Duration is the wall time of the build.
func (r *BuildReport) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// DateSources counts posts per date source.
func (r *BuildReport) DateSources() map[interfaces.DateSource]int {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.dateSources)
}

// Untitled lists the slugs that fell back to the untitled sentinel.
func (r *BuildReport) Untitled() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.untitled)
	slices.Sort(out)
	return out
}

// InvalidSlugs lists slugs that are not URL safe. They are kept verbatim.
func (r *BuildReport) InvalidSlugs() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.invalidSlugs)
	slices.Sort(out)
	return out
}

// Failures returns the per-file errors of the build.
func (r *BuildReport) Failures() []*goerrors.Error {
	if r == nil || r.failures == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures.Errors()
}

// Failed reports whether any file was left out.
func (r *BuildReport) Failed() bool {
	if r == nil || r.failures == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures.HasErrors()
}

func (r *BuildReport) recordPost(post interfaces.Post, from interfaces.DateSource, validSlug bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dateSources[from]++
	if post.Title == interfaces.UntitledPost {
		r.untitled = append(r.untitled, post.Slug)
	}
	if !validSlug {
		r.invalidSlugs = append(r.invalidSlugs, post.Slug)
	}
}

func (r *BuildReport) recordFailure(err *goerrors.Error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures.Add(err)
}
