package di_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	postscmd "github.com/goliatone/go-blog/internal/commands/posts"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Posts.Dir = "posts"
	cfg.Build.Workers = 2
	cfg.Site.BaseURL = "https://blog.example.com"
	return cfg
}

func postsFS() fstest.MapFS {
	return fstest.MapFS{
		"alpha.md":  {Data: []byte("# Alpha\n\nfirst"), ModTime: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		"beta.md":   {Data: []byte("# Beta\n\nsecond"), ModTime: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		"notes.txt": {Data: []byte("ignored")},
	}
}

// alphaHistory reports a commit date for alpha.md only.
func alphaHistory(_ context.Context, _ string, args ...string) ([]byte, error) {
	if len(args) > 0 && args[len(args)-1] == "alpha.md" {
		return []byte("2024-03-01T12:00:00Z\n"), nil
	}
	return nil, nil
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Posts.Dir = ""

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrPostsDirRequired) {
		t.Fatalf("expected ErrPostsDirRequired, got %v", err)
	}
}

func TestContainerWiresHistoryBeforeFilesystem(t *testing.T) {
	container, err := di.NewContainer(testConfig(),
		di.WithFS(postsFS()),
		di.WithGitRunner(alphaHistory),
		di.WithLoggerProvider(newRecordingProvider()),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	ctx := context.Background()
	all, err := container.PostService().AllSorted(ctx)
	if err != nil {
		t.Fatalf("AllSorted: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(all))
	}
	// alpha's commit date (March) beats beta's modification time (February).
	if all[0].Slug != "alpha" || all[1].Slug != "beta" {
		t.Fatalf("unexpected order: %s, %s", all[0].Slug, all[1].Slug)
	}

	sources := container.PostService().Report().DateSources()
	if sources[interfaces.DateSourceGit] != 1 || sources[interfaces.DateSourceFilesystem] != 1 {
		t.Fatalf("unexpected date sources: %v", sources)
	}
}

func TestContainerWithoutHistoryUsesFilesystemDates(t *testing.T) {
	cfg := testConfig()
	cfg.History.Enabled = false

	calls := 0
	container, err := di.NewContainer(cfg,
		di.WithFS(postsFS()),
		di.WithGitRunner(func(context.Context, string, ...string) ([]byte, error) {
			calls++
			return nil, nil
		}),
		di.WithLoggerProvider(newRecordingProvider()),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	slugs, err := container.PostService().ListSlugs(context.Background())
	if err != nil {
		t.Fatalf("ListSlugs: %v", err)
	}
	if strings.Join(slugs, ",") != "beta,alpha" {
		t.Fatalf("unexpected slugs: %v", slugs)
	}
	if calls != 0 {
		t.Fatalf("history runner should not be called when disabled, got %d calls", calls)
	}
}

func TestContainerBuildFeedsMetrics(t *testing.T) {
	container, err := di.NewContainer(testConfig(),
		di.WithFS(postsFS()),
		di.WithGitRunner(alphaHistory),
		di.WithLoggerProvider(newRecordingProvider()),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	if _, err := container.PostService().AllSorted(context.Background()); err != nil {
		t.Fatalf("AllSorted: %v", err)
	}
	if got := testutil.ToFloat64(container.Metrics().BuildsCollector()); got != 1 {
		t.Fatalf("expected 1 recorded build, got %v", got)
	}
}

func TestContainerCommandsWriteSitemap(t *testing.T) {
	container, err := di.NewContainer(testConfig(),
		di.WithFS(postsFS()),
		di.WithGitRunner(alphaHistory),
		di.WithLoggerProvider(newRecordingProvider()),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	ctx := context.Background()
	var result postscmd.BuildIndexResult
	err = container.Commands().BuildIndex.Execute(ctx, postscmd.BuildIndexCommand{
		ResultCallback: func(r postscmd.BuildIndexResult) { result = r },
	})
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if len(result.Slugs) != 2 {
		t.Fatalf("expected 2 slugs, got %v", result.Slugs)
	}

	out := filepath.Join(t.TempDir(), "sitemap.xml")
	if err := container.Commands().GenerateSitemap.Execute(ctx, postscmd.GenerateSitemapCommand{OutputPath: out}); err != nil {
		t.Fatalf("GenerateSitemap: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	if !bytes.Contains(data, []byte("https://blog.example.com/posts/alpha/")) {
		t.Fatalf("sitemap missing alpha URL:\n%s", data)
	}
}

func TestContainerParserUsesRenderConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Render.SafeMode = true

	container, err := di.NewContainer(cfg, di.WithLoggerProvider(newRecordingProvider()))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	html, err := container.Parser().Parse([]byte("<b>raw</b>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if bytes.Contains(html, []byte("<b>raw</b>")) {
		t.Fatalf("safe mode should drop raw HTML, got %s", html)
	}
}

func TestContainerDefaultsToConsoleProvider(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Logging.Level = "debug"

	if _, err := di.NewContainer(cfg, di.WithLogWriter(&buf)); err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if !strings.Contains(buf.String(), "DEBUG container.configured") {
		t.Fatalf("expected container.configured in console output, got %q", buf.String())
	}
}

func TestContainerSelectsZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Logging.Provider = "zerolog"
	cfg.Logging.Level = "debug"

	if _, err := di.NewContainer(cfg, di.WithLogWriter(&buf)); err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	line := buf.String()
	if !strings.Contains(line, `"message":"container.configured"`) || !strings.Contains(line, `"logger":"blog"`) {
		t.Fatalf("expected zerolog JSON entry, got %q", line)
	}
}
