package postscmd

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blog/internal/posts"
)

const (
	buildIndexMessageType      = "blog.posts.build_index"
	generateSitemapMessageType = "blog.posts.generate_sitemap"
)

// BuildIndexResult is handed to ResultCallback after a build.
type BuildIndexResult struct {
	Slugs  []string
	Report *posts.BuildReport
}

// BuildIndexCommand loads the post index. With Refresh set an existing
// snapshot is discarded and rebuilt.
type BuildIndexCommand struct {
	Refresh        bool                   `json:"refresh,omitempty"`
	ResultCallback func(BuildIndexResult) `json:"-"`
}

// Type implements command.Message.
func (BuildIndexCommand) Type() string { return buildIndexMessageType }

// Validate implements command.Message. The command has no required input.
func (BuildIndexCommand) Validate() error { return nil }

// GenerateSitemapCommand writes the sitemap XML to OutputPath.
type GenerateSitemapCommand struct {
	OutputPath string `json:"output_path"`
}

// Type implements command.Message.
func (GenerateSitemapCommand) Type() string { return generateSitemapMessageType }

// Validate requires an .xml output path.
func (cmd GenerateSitemapCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputPath, validation.Required, validation.By(func(value any) error {
			path := strings.TrimSpace(value.(string))
			if path == "" {
				return validation.NewError("blog.posts.generate_sitemap.output_required", "output path is required")
			}
			if !strings.EqualFold(filepath.Ext(path), ".xml") {
				return validation.NewError("blog.posts.generate_sitemap.output_extension", "output path must end in .xml")
			}
			return nil
		})),
	)
}
