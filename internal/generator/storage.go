package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type writeCategory string

const (
	categorySitemap writeCategory = "sitemap"
	categoryFeed    writeCategory = "feed"
)

// writeFileRequest describes one generated artifact.
type writeFileRequest struct {
	Path        string
	Content     []byte
	Category    writeCategory
	ContentType string
}

// artifactWriter stores generator outputs.
type artifactWriter interface {
	WriteFile(ctx context.Context, req writeFileRequest) error
}

// fileWriter replaces files on the local disk through a temp file and a
// rename so readers never observe a partial artifact.
type fileWriter struct{}

func (fileWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(req.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("generator: create %s dir: %w", req.Category, err)
	}

	tmp, err := os.CreateTemp(dir, "."+string(req.Category)+"-*")
	if err != nil {
		return fmt.Errorf("generator: create %s: %w", req.Category, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("generator: chmod %s: %w", req.Category, err)
	}
	if _, err := tmp.Write(req.Content); err != nil {
		tmp.Close()
		return fmt.Errorf("generator: write %s: %w", req.Category, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("generator: close %s: %w", req.Category, err)
	}
	if err := os.Rename(tmp.Name(), req.Path); err != nil {
		return fmt.Errorf("generator: replace %s: %w", req.Category, err)
	}
	return nil
}
