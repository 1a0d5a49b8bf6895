package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var headingParser = goldmark.New(
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
).Parser()

// Headings lists every heading of content in document order, with the
// anchor id the HTML renderer assigns to it.
func Headings(content string) ([]interfaces.Heading, error) {
	source := []byte(content)
	doc := headingParser.Parse(text.NewReader(source))

	var headings []interfaces.Heading
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := node.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		label, err := inlineText(heading, source)
		if err != nil {
			return ast.WalkStop, err
		}
		entry := interfaces.Heading{
			Level: heading.Level,
			Text:  strings.TrimSpace(label),
		}
		if id, found := heading.AttributeString("id"); found {
			if raw, isBytes := id.([]byte); isBytes {
				entry.ID = string(raw)
			}
		}
		headings = append(headings, entry)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown headings: %w", err)
	}
	return headings, nil
}

func inlineText(node ast.Node, source []byte) (string, error) {
	var b strings.Builder
	err := ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := child.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(source))
			if n.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(n.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String(), err
}
