package posts_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type fakeFile struct {
	content string
	date    *time.Time
	from    interfaces.DateSource
	readErr error
}

type fakeSource struct {
	mu      sync.Mutex
	names   []string
	files   map[string]fakeFile
	listErr error

	lists atomic.Int32
	reads atomic.Int32
	dates atomic.Int32
}

func (f *fakeSource) ListFiles(context.Context) ([]string, error) {
	f.lists.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.names...), nil
}

func (f *fakeSource) ReadRaw(_ context.Context, name string) (string, error) {
	f.reads.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[name]
	if !ok {
		return "", &interfaces.NotFoundError{Resource: "file", Key: name}
	}
	if file.readErr != nil {
		return "", file.readErr
	}
	return file.content, nil
}

func (f *fakeSource) ResolveDate(_ context.Context, name string) (time.Time, interfaces.DateSource, bool) {
	f.dates.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	file := f.files[name]
	if file.date == nil {
		return time.Time{}, interfaces.DateSourceNone, false
	}
	from := file.from
	if from == "" {
		from = interfaces.DateSourceGit
	}
	return *file.date, from, true
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// blogSource is the three post directory used across tests: beta is the
// newest, alpha older and gamma has no date at all.
func blogSource() *fakeSource {
	return &fakeSource{
		names: []string{"alpha.md", "beta.md", "gamma.md"},
		files: map[string]fakeFile{
			"alpha.md": {content: "# Alpha\n\nFirst post.", date: date(2024, 1, 1)},
			"beta.md":  {content: "# Beta\n\nSecond post.", date: date(2024, 2, 1), from: interfaces.DateSourceFilesystem},
			"gamma.md": {content: "# Gamma\n\nUndated post."},
		},
	}
}

func titles(list []interfaces.Post) []string {
	out := make([]string, len(list))
	for i, post := range list {
		out[i] = post.Title
	}
	return out
}
