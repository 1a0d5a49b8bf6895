package markdown

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// GoldmarkParser renders post Markdown with goldmark. The engine for its
// defaults is built once; it is safe for concurrent use.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions
	engine   goldmark.Markdown
}

var _ interfaces.MarkdownParser = (*GoldmarkParser)(nil)

// NewGoldmarkParser returns a parser using defaults for Parse. An empty
// extension list enables GFM, linkify and task lists; raw HTML passes
// through unless SafeMode is set.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{defaults: defaults, engine: engineFor(defaults)}
}

// Parse renders markdown with the parser defaults.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return render(p.engine, markdown)
}

// ParseWithOptions renders markdown with opts. Options equal to the parser
// defaults reuse the prebuilt engine.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if sameOptions(opts, p.defaults) {
		return render(p.engine, markdown)
	}
	return render(engineFor(opts), markdown)
}

func render(engine goldmark.Markdown, markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

func sameOptions(a, b interfaces.ParseOptions) bool {
	return a.HardWraps == b.HardWraps &&
		a.SafeMode == b.SafeMode &&
		slices.Equal(a.Extensions, b.Extensions)
}

func engineFor(opts interfaces.ParseOptions) goldmark.Markdown {
	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(extensionsFor(opts.Extensions)...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

var extensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// GFM already carries linkify and task lists.
var defaultExtensions = []goldmark.Extender{extension.GFM}

// gfmParts are the extenders GFM registers itself.
var gfmParts = []goldmark.Extender{
	extension.Linkify,
	extension.Table,
	extension.Strikethrough,
	extension.TaskList,
}

// extensionsFor resolves names to extenders, each registered at most once
// whatever alias or GFM bundle requested it.
func extensionsFor(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return defaultExtensions
	}

	requested := make([]goldmark.Extender, 0, len(names))
	withGFM := false
	for _, name := range names {
		ext, known := extensions[strings.ToLower(strings.TrimSpace(name))]
		if !known {
			continue
		}
		if ext == extension.GFM {
			withGFM = true
		}
		requested = append(requested, ext)
	}

	seen := make(map[goldmark.Extender]bool, len(requested)+len(gfmParts))
	if withGFM {
		for _, part := range gfmParts {
			seen[part] = true
		}
	}
	out := make([]goldmark.Extender, 0, len(requested))
	for _, ext := range requested {
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}
