package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/source"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestReaderListFiles_FiltersAndOrders(t *testing.T) {
	fsys := fstest.MapFS{
		"gamma.md":         {Data: []byte("# Gamma")},
		"alpha.md":         {Data: []byte("# Alpha")},
		"beta.md":          {Data: []byte("# Beta")},
		"notes.txt":        {Data: []byte("not a post")},
		"drafts/delta.md":  {Data: []byte("# Delta")},
		"archive.md/x.txt": {Data: []byte("dir named like a post")},
	}
	reader := source.NewReader(source.Config{Dir: "posts"}, source.WithFS(fsys))

	names, err := reader.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := []string{"alpha.md", "beta.md", "gamma.md"}
	if !slices.Equal(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestReaderListFiles_EmptyDirectory(t *testing.T) {
	reader := source.NewReader(source.Config{Dir: t.TempDir()})

	names, err := reader.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no files, got %v", names)
	}
}

func TestReaderListFiles_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	reader := source.NewReader(source.Config{Dir: dir})

	_, err := reader.ListFiles(context.Background())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !source.IsSourceUnavailable(err) {
		t.Fatalf("expected source unavailable error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not_found category, got %v", err)
	}
}

func TestReaderReadRaw(t *testing.T) {
	content := "# Hello\n\nBody with ünïcode.\n"
	fsys := fstest.MapFS{"hello.md": {Data: []byte(content)}}
	reader := source.NewReader(source.Config{Dir: "posts"}, source.WithFS(fsys))

	got, err := reader.ReadRaw(context.Background(), "hello.md")
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if got != content {
		t.Fatalf("expected %q, got %q", content, got)
	}
}

func TestReaderReadRaw_RemovedFileIsNotFound(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gone.md")
	if err := os.WriteFile(file, []byte("# Gone"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	reader := source.NewReader(source.Config{Dir: dir})

	names, err := reader.ListFiles(context.Background())
	if err != nil || len(names) != 1 {
		t.Fatalf("ListFiles: %v %v", names, err)
	}
	if err := os.Remove(file); err != nil {
		t.Fatalf("remove fixture: %v", err)
	}

	_, err = reader.ReadRaw(context.Background(), names[0])
	if !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var notFound *interfaces.NotFoundError
	if !errors.As(err, &notFound) || notFound.Key != "gone.md" {
		t.Fatalf("expected NotFoundError for gone.md, got %v", err)
	}
}

func TestReaderResolveDate_DefaultsToFileInfo(t *testing.T) {
	modified := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fsys := fstest.MapFS{"alpha.md": {Data: []byte("# Alpha"), ModTime: modified}}
	reader := source.NewReader(source.Config{Dir: "posts"}, source.WithFS(fsys))

	got, from, ok := reader.ResolveDate(context.Background(), "alpha.md")
	if !ok || from != interfaces.DateSourceFilesystem {
		t.Fatalf("expected filesystem date, got ok=%v source=%s", ok, from)
	}
	if !got.Equal(modified) {
		t.Fatalf("expected %s, got %s", modified, got)
	}
}
