package posts

import (
	"slices"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// SortByDateDescending returns a sorted copy of posts: dated posts newest
// first, then undated posts. Equal dates keep their input order.
func SortByDateDescending(posts []interfaces.Post) []interfaces.Post {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, compareByDateDescending)
	return sorted
}

func compareByDateDescending(a, b interfaces.Post) int {
	switch {
	case a.UpdatedDate == nil && b.UpdatedDate == nil:
		return 0
	case a.UpdatedDate == nil:
		return 1
	case b.UpdatedDate == nil:
		return -1
	default:
		return b.UpdatedDate.Compare(*a.UpdatedDate)
	}
}

// Index is an immutable, date ordered snapshot of posts.
type Index struct {
	posts    []interfaces.Post
	position map[string]int
}

// NewIndex sorts posts and indexes them by slug. When slugs repeat the
// first occurrence in sorted order wins.
func NewIndex(posts []interfaces.Post) *Index {
	sorted := SortByDateDescending(posts)
	idx := &Index{
		posts:    make([]interfaces.Post, 0, len(sorted)),
		position: make(map[string]int, len(sorted)),
	}
	for _, post := range sorted {
		if _, exists := idx.position[post.Slug]; exists {
			continue
		}
		idx.position[post.Slug] = len(idx.posts)
		idx.posts = append(idx.posts, post.Clone())
	}
	return idx
}

// Len returns the number of indexed posts.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.posts)
}

// All returns every post in index order.
func (i *Index) All() []interfaces.Post {
	if i == nil {
		return []interfaces.Post{}
	}
	out := make([]interfaces.Post, len(i.posts))
	for n, post := range i.posts {
		out[n] = post.Clone()
	}
	return out
}

// Slugs returns the slugs of All, in the same order.
func (i *Index) Slugs() []string {
	if i == nil {
		return []string{}
	}
	out := make([]string, len(i.posts))
	for n, post := range i.posts {
		out[n] = post.Slug
	}
	return out
}

// Get returns the post for slug. Unknown slugs return an error matching
// interfaces.ErrNotFound.
func (i *Index) Get(slug string) (interfaces.Post, error) {
	pos, ok := i.lookup(slug)
	if !ok {
		return interfaces.Post{}, postNotFound(slug)
	}
	return i.posts[pos].Clone(), nil
}

// Adjacent returns the neighbours of slug by position: Previous is the
// newer post before it, Next the older post after it.
func (i *Index) Adjacent(slug string) (interfaces.Adjacent, error) {
	pos, ok := i.lookup(slug)
	if !ok {
		return interfaces.Adjacent{}, postNotFound(slug)
	}
	var adjacent interfaces.Adjacent
	if pos > 0 {
		previous := i.posts[pos-1].Clone()
		adjacent.Previous = &previous
	}
	if pos+1 < len(i.posts) {
		next := i.posts[pos+1].Clone()
		adjacent.Next = &next
	}
	return adjacent, nil
}

func (i *Index) lookup(slug string) (int, bool) {
	if i == nil {
		return 0, false
	}
	pos, ok := i.position[slug]
	return pos, ok
}
