package postscmd_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	goerrors "github.com/goliatone/go-errors"

	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/source"
)

func newService(t *testing.T) *posts.Service {
	t.Helper()
	fsys := fstest.MapFS{
		"alpha.md": {Data: []byte("# Alpha"), ModTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		"beta.md":  {Data: []byte("# Beta"), ModTime: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	reader := source.NewReader(source.Config{Dir: "posts"}, source.WithFS(fsys))
	return posts.NewService(posts.NewBuilder(reader), nil)
}

func TestBuildIndexHandler(t *testing.T) {
	svc := newService(t)
	handler := postscmd.NewBuildIndexHandler(svc, nil)

	var result postscmd.BuildIndexResult
	err := handler.Execute(context.Background(), postscmd.BuildIndexCommand{
		Refresh:        true,
		ResultCallback: func(r postscmd.BuildIndexResult) { result = r },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !slices.Equal(result.Slugs, []string{"beta", "alpha"}) {
		t.Fatalf("unexpected slugs %v", result.Slugs)
	}
	if result.Report == nil || result.Report.Posts != 2 {
		t.Fatalf("expected build report, got %+v", result.Report)
	}
}

type failingIndex struct{}

func (failingIndex) ListSlugs(context.Context) ([]string, error) { return nil, nil }
func (failingIndex) Refresh(context.Context) error               { return errors.New("disk on fire") }
func (failingIndex) Report() *posts.BuildReport                  { return nil }

func TestBuildIndexHandler_RefreshFailure(t *testing.T) {
	err := postscmd.NewBuildIndexHandler(failingIndex{}, nil).
		Execute(context.Background(), postscmd.BuildIndexCommand{Refresh: true})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestGenerateSitemapCommandValidate(t *testing.T) {
	cases := map[string]bool{
		"":                false,
		"   ":             false,
		"out/sitemap.txt": false,
		"out/sitemap.xml": true,
		"public/SITE.XML": true,
	}
	for path, valid := range cases {
		err := postscmd.GenerateSitemapCommand{OutputPath: path}.Validate()
		if valid && err != nil {
			t.Fatalf("%q: unexpected error %v", path, err)
		}
		if !valid && err == nil {
			t.Fatalf("%q: expected validation error", path)
		}
	}
}

func TestGenerateSitemapHandler(t *testing.T) {
	svc := newService(t)
	site := runtimeconfig.SiteConfig{BaseURL: "https://blog.example.com", PostsPath: "/posts"}
	writer := generator.NewSitemapGenerator(svc, site, nil)
	handler := postscmd.NewGenerateSitemapHandler(writer, nil)

	path := filepath.Join(t.TempDir(), "sitemap.xml")
	if err := handler.Execute(context.Background(), postscmd.GenerateSitemapCommand{OutputPath: path}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	if !strings.Contains(string(data), "https://blog.example.com/posts/beta") {
		t.Fatalf("unexpected sitemap:\n%s", data)
	}

	err = handler.Execute(context.Background(), postscmd.GenerateSitemapCommand{OutputPath: "sitemap.json"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
