package posts_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func scenarioPosts() []interfaces.Post {
	return []interfaces.Post{
		{Slug: "alpha", Title: "Alpha", UpdatedDate: date(2024, 1, 1)},
		{Slug: "beta", Title: "Beta", UpdatedDate: date(2024, 2, 1)},
		{Slug: "gamma", Title: "Gamma"},
	}
}

func TestSortByDateDescending(t *testing.T) {
	sorted := posts.SortByDateDescending(scenarioPosts())

	if got, want := titles(sorted), []string{"Beta", "Alpha", "Gamma"}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSortByDateDescending_StableForTiesAndUndated(t *testing.T) {
	input := []interfaces.Post{
		{Slug: "u1", Title: "U1"},
		{Slug: "a", Title: "A", UpdatedDate: date(2024, 3, 1)},
		{Slug: "u2", Title: "U2"},
		{Slug: "b", Title: "B", UpdatedDate: date(2024, 3, 1)},
		{Slug: "c", Title: "C", UpdatedDate: date(2024, 5, 1)},
		{Slug: "u3", Title: "U3"},
	}

	sorted := posts.SortByDateDescending(input)
	want := []string{"C", "A", "B", "U1", "U2", "U3"}
	if got := titles(sorted); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if input[0].Slug != "u1" {
		t.Fatal("input slice must not be reordered")
	}
}

func TestSortByDateDescending_Idempotent(t *testing.T) {
	once := posts.SortByDateDescending(scenarioPosts())
	twice := posts.SortByDateDescending(once)
	if !slices.Equal(titles(once), titles(twice)) {
		t.Fatalf("sorting twice changed order: %v vs %v", titles(once), titles(twice))
	}
}

func TestIndexQueries(t *testing.T) {
	idx := posts.NewIndex(scenarioPosts())

	if got, want := idx.Slugs(), []string{"beta", "alpha", "gamma"}; !slices.Equal(got, want) {
		t.Fatalf("expected slugs %v, got %v", want, got)
	}

	post, err := idx.Get("alpha")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if post.Title != "Alpha" {
		t.Fatalf("expected Alpha, got %q", post.Title)
	}

	adjacent, err := idx.Adjacent("alpha")
	if err != nil {
		t.Fatalf("Adjacent: %v", err)
	}
	if adjacent.Previous == nil || adjacent.Previous.Title != "Beta" {
		t.Fatalf("expected previous Beta, got %+v", adjacent.Previous)
	}
	if adjacent.Next == nil || adjacent.Next.Title != "Gamma" {
		t.Fatalf("expected next Gamma, got %+v", adjacent.Next)
	}

	first, _ := idx.Adjacent("beta")
	if first.Previous != nil || first.Next == nil || first.Next.Slug != "alpha" {
		t.Fatalf("unexpected neighbours for first post: %+v", first)
	}
	last, _ := idx.Adjacent("gamma")
	if last.Next != nil || last.Previous == nil || last.Previous.Slug != "alpha" {
		t.Fatalf("unexpected neighbours for last post: %+v", last)
	}
}

func TestIndexAdjacencyMatchesPositions(t *testing.T) {
	idx := posts.NewIndex(scenarioPosts())
	all := idx.All()
	for i, post := range all {
		adjacent, err := idx.Adjacent(post.Slug)
		if err != nil {
			t.Fatalf("Adjacent(%s): %v", post.Slug, err)
		}
		if i > 0 && adjacent.Previous.Slug != all[i-1].Slug {
			t.Fatalf("previous of %s should be %s", post.Slug, all[i-1].Slug)
		}
		if i+1 < len(all) && adjacent.Next.Slug != all[i+1].Slug {
			t.Fatalf("next of %s should be %s", post.Slug, all[i+1].Slug)
		}
	}
}

func TestIndexSinglePost(t *testing.T) {
	idx := posts.NewIndex([]interfaces.Post{{Slug: "only", Title: "Only"}})

	adjacent, err := idx.Adjacent("only")
	if err != nil {
		t.Fatalf("Adjacent: %v", err)
	}
	if adjacent.Previous != nil || adjacent.Next != nil {
		t.Fatalf("expected no neighbours, got %+v", adjacent)
	}
}

func TestIndexUnknownSlug(t *testing.T) {
	idx := posts.NewIndex(scenarioPosts())

	if _, err := idx.Get("missing"); !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Get, got %v", err)
	}
	if _, err := idx.Adjacent("missing"); !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Adjacent, got %v", err)
	}

	var notFound *interfaces.NotFoundError
	_, err := idx.Get("missing")
	if !errors.As(err, &notFound) || notFound.Resource != "post" || notFound.Key != "missing" {
		t.Fatalf("expected typed not found error, got %v", err)
	}
}

func TestIndexEmpty(t *testing.T) {
	idx := posts.NewIndex(nil)
	if idx.Len() != 0 || len(idx.All()) != 0 || len(idx.Slugs()) != 0 {
		t.Fatal("expected an empty index")
	}
	if _, err := idx.Get("anything"); !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIndexReturnsCopies(t *testing.T) {
	idx := posts.NewIndex(scenarioPosts())

	all := idx.All()
	all[0].Title = "changed"
	*all[0].UpdatedDate = all[0].UpdatedDate.AddDate(10, 0, 0)

	again, _ := idx.Get("beta")
	if again.Title != "Beta" || again.UpdatedDate.Year() != 2024 {
		t.Fatalf("index snapshot was mutated through a returned post: %+v", again)
	}
}
