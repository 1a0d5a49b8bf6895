package source_test

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-blog/internal/source"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type fixedResolver struct {
	date  time.Time
	ok    bool
	calls int
}

func (f *fixedResolver) ResolveDate(context.Context, string) (time.Time, bool) {
	f.calls++
	return f.date, f.ok
}

func TestDateChain_FirstAnswerWins(t *testing.T) {
	gitDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	git := &fixedResolver{date: gitDate, ok: true}
	files := &fixedResolver{date: time.Now(), ok: true}

	chain := source.NewDateChain(nil,
		source.DateStep{Source: interfaces.DateSourceGit, Resolver: git},
		source.DateStep{Source: interfaces.DateSourceFilesystem, Resolver: files},
	)

	got, from, ok := chain.Resolve(context.Background(), "beta.md")
	if !ok || from != interfaces.DateSourceGit || !got.Equal(gitDate) {
		t.Fatalf("expected git date, got %s %s %v", got, from, ok)
	}
	if files.calls != 0 {
		t.Fatalf("filesystem step should not run after git answered")
	}
}

func TestDateChain_FallsThrough(t *testing.T) {
	fsDate := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	chain := source.NewDateChain(nil,
		source.DateStep{Source: interfaces.DateSourceGit, Resolver: &fixedResolver{}},
		source.DateStep{Source: interfaces.DateSourceFilesystem, Resolver: &fixedResolver{date: fsDate, ok: true}},
	)

	got, from, ok := chain.Resolve(context.Background(), "alpha.md")
	if !ok || from != interfaces.DateSourceFilesystem || !got.Equal(fsDate) {
		t.Fatalf("expected filesystem date, got %s %s %v", got, from, ok)
	}
}

func TestDateChain_AllStepsFail(t *testing.T) {
	chain := source.NewDateChain(nil,
		source.DateStep{Source: interfaces.DateSourceGit, Resolver: &fixedResolver{}},
		source.DateStep{Source: interfaces.DateSourceFilesystem, Resolver: source.NewFileInfoResolver(fstest.MapFS{}, nil)},
	)

	got, from, ok := chain.Resolve(context.Background(), "gamma.md")
	if ok || from != interfaces.DateSourceNone || !got.IsZero() {
		t.Fatalf("expected absent date, got %s %s %v", got, from, ok)
	}
}

func TestDateChain_NilIsEmpty(t *testing.T) {
	var chain *source.DateChain
	if _, from, ok := chain.Resolve(context.Background(), "x.md"); ok || from != interfaces.DateSourceNone {
		t.Fatalf("nil chain should report no date")
	}
}
