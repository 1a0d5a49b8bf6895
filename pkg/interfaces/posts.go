package interfaces

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// UntitledPost is the title assigned to posts without a level-1 heading.
const UntitledPost = "Untitled"

// ErrNotFound is matched (errors.Is) by every lookup failure for a missing
// file or slug.
var ErrNotFound = errors.New("not found")

// NotFoundError names the missing resource ("post", "file") and its key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Is makes every NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Post is an immutable record derived from one Markdown file.
type Post struct {
	// Slug is the filename without its .md extension.
	Slug string `json:"slug"`
	// Title is the text of the first "# " heading, or UntitledPost.
	Title string `json:"title"`
	// Content is the raw Markdown, heading line included.
	Content string `json:"content"`
	// UpdatedDate is nil when no date source produced a timestamp.
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
}

// HasDate reports whether the post resolved a modification date.
func (p Post) HasDate() bool {
	return p.UpdatedDate != nil
}

// Clone returns a deep copy so callers cannot alter a shared snapshot.
func (p Post) Clone() Post {
	if p.UpdatedDate != nil {
		date := *p.UpdatedDate
		p.UpdatedDate = &date
	}
	return p
}

// Adjacent holds the neighbours of a post in date-descending order.
// Previous is the newer post, Next the older one; nil means none.
type Adjacent struct {
	Previous *Post `json:"previous,omitempty"`
	Next     *Post `json:"next,omitempty"`
}

// PostService is the read-only query surface consumed by page renderers,
// static path enumeration and sitemap generation.
type PostService interface {
	// AllSorted returns every post, newest first, undated posts last.
	AllSorted(ctx context.Context) ([]Post, error)
	// GetBySlug returns the post for slug or an error matching ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (Post, error)
	// GetAdjacent returns the positional neighbours of slug.
	GetAdjacent(ctx context.Context, slug string) (Adjacent, error)
	// ListSlugs returns the slugs of AllSorted, in the same order.
	ListSlugs(ctx context.Context) ([]string, error)
	// Refresh discards the current snapshot and rebuilds it.
	Refresh(ctx context.Context) error
}

// DateSource names the step of the fallback chain that produced a date.
type DateSource string

const (
	DateSourceGit        DateSource = "git"
	DateSourceFilesystem DateSource = "filesystem"
	DateSourceNone       DateSource = "none"
)

// DateResolver resolves the last modification instant of a file relative to
// the configured source directory. ok is false when the resolver has no
// answer; resolvers never fail hard.
type DateResolver interface {
	ResolveDate(ctx context.Context, name string) (modified time.Time, ok bool)
}
