package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-blog/internal/metrics"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type memorySource struct {
	files map[string]string
	dates map[string]time.Time
	names []string
}

func (m memorySource) ListFiles(context.Context) ([]string, error) { return m.names, nil }

func (m memorySource) ReadRaw(_ context.Context, name string) (string, error) {
	content, ok := m.files[name]
	if !ok {
		return "", &interfaces.NotFoundError{Resource: "file", Key: name}
	}
	return content, nil
}

func (m memorySource) ResolveDate(_ context.Context, name string) (time.Time, interfaces.DateSource, bool) {
	if d, ok := m.dates[name]; ok {
		return d, interfaces.DateSourceGit, true
	}
	return time.Time{}, interfaces.DateSourceNone, false
}

func buildWith(t *testing.T, recorder *metrics.Recorder) {
	t.Helper()
	src := memorySource{
		names: []string{"alpha.md", "beta.md", "gamma.md", "gone.md"},
		files: map[string]string{
			"alpha.md": "# Alpha",
			"beta.md":  "# Beta",
			"gamma.md": "no heading",
		},
		dates: map[string]time.Time{
			"alpha.md": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			"beta.md":  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	builder := posts.NewBuilder(src, posts.WithObserver(recorder))
	if _, _, err := builder.BuildAll(context.Background()); err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
}

func TestRecorderObserveBuild(t *testing.T) {
	recorder := metrics.NewRecorder()
	buildWith(t, recorder)

	expected := `
# HELP blog_post_dates Posts per date source in the most recent build.
# TYPE blog_post_dates gauge
blog_post_dates{source="filesystem"} 0
blog_post_dates{source="git"} 2
blog_post_dates{source="none"} 1
# HELP blog_posts_indexed Posts in the most recent index.
# TYPE blog_posts_indexed gauge
blog_posts_indexed 3
# HELP blog_source_files_failed Files left out of the most recent build.
# TYPE blog_source_files_failed gauge
blog_source_files_failed 1
# HELP blog_posts_untitled Posts without a level-1 heading in the most recent build.
# TYPE blog_posts_untitled gauge
blog_posts_untitled 1
`
	err := testutil.GatherAndCompare(recorder.Registry(), strings.NewReader(expected),
		"blog_post_dates", "blog_posts_indexed", "blog_source_files_failed", "blog_posts_untitled")
	if err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
	count, err := testutil.GatherAndCount(recorder.Registry(), "blog_build_duration_seconds")
	if err != nil || count != 1 {
		t.Fatalf("expected build duration histogram, got %d series (%v)", count, err)
	}
}

func TestRecorderWriteTextfile(t *testing.T) {
	recorder := metrics.NewRecorder()
	buildWith(t, recorder)

	path := filepath.Join(t.TempDir(), "blog.prom")
	if err := recorder.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	for _, want := range []string{"blog_builds_total 1", "blog_posts_indexed 3", "blog_build_duration_seconds_count 1"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in textfile:\n%s", want, data)
		}
	}
}

func TestRecorderNilReport(t *testing.T) {
	recorder := metrics.NewRecorder()
	recorder.ObserveBuild(nil)
	if got := testutil.ToFloat64(recorder.BuildsCollector()); got != 0 {
		t.Fatalf("nil report must not count as a build, got %v", got)
	}
}
