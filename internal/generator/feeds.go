package generator

import (
	"context"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	maxFeedItems      = 100
	maxSummaryRunes   = 280
	rssFeedFilename   = "feed.xml"
	atomFeedFilename  = "feed.atom.xml"
	defaultFeedTitle  = "Blog"
	defaultFeedDetail = "Latest posts"
)

type feedItem struct {
	Title     string
	Summary   string
	Link      string
	UpdatedAt time.Time
	Dated     bool
}

// feedItems converts posts into feed entries, keeping their order and
// capping the list at the newest hundred.
func feedItems(routes *Routes, posts []interfaces.Post) ([]feedItem, error) {
	if len(posts) > maxFeedItems {
		posts = posts[:maxFeedItems]
	}
	items := make([]feedItem, 0, len(posts))
	for _, post := range posts {
		link, err := routes.Post(post.Slug)
		if err != nil {
			return nil, err
		}
		item := feedItem{
			Title:   post.Title,
			Summary: feedSummary(post.Content),
			Link:    link,
		}
		if post.UpdatedDate != nil {
			item.UpdatedAt = post.UpdatedDate.UTC()
			item.Dated = true
		}
		items = append(items, item)
	}
	return items, nil
}

// BuildRSSFeed renders an RSS 2.0 channel.
func BuildRSSFeed(site runtimeconfig.SiteConfig, posts []interfaces.Post, generatedAt time.Time) ([]byte, error) {
	routes, err := NewRoutes(site)
	if err != nil {
		return nil, err
	}
	items, err := feedItems(routes, posts)
	if err != nil {
		return nil, err
	}
	home, err := routes.Home()
	if err != nil {
		return nil, err
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(feedTitle(site))))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(home)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(feedDescription(site))))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	for _, item := range items {
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(item.Link)))
		if item.Dated {
			builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.UpdatedAt.Format(time.RFC1123Z)))
		}
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Summary)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return []byte(builder.String()), nil
}

// BuildAtomFeed renders an Atom 1.0 feed. Atom requires <updated> on every
// entry, so undated posts carry generatedAt.
func BuildAtomFeed(site runtimeconfig.SiteConfig, posts []interfaces.Post, generatedAt time.Time) ([]byte, error) {
	routes, err := NewRoutes(site)
	if err != nil {
		return nil, err
	}
	items, err := feedItems(routes, posts)
	if err != nil {
		return nil, err
	}
	home, err := routes.Home()
	if err != nil {
		return nil, err
	}
	feedID := home + atomFeedFilename

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString(fmt.Sprintf("  <id>%s</id>\n", escapeXML(feedID)))
	builder.WriteString(fmt.Sprintf("  <title>%s</title>\n", escapeXML(feedTitle(site))))
	builder.WriteString(fmt.Sprintf("  <updated>%s</updated>\n", generatedAt.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf(`  <link rel="alternate" href="%s" />`+"\n", escapeXMLAttr(home)))
	builder.WriteString(fmt.Sprintf(`  <link rel="self" href="%s" />`+"\n", escapeXMLAttr(feedID)))
	for _, item := range items {
		updated := item.UpdatedAt
		if !item.Dated {
			updated = generatedAt.UTC()
		}
		builder.WriteString("  <entry>\n")
		builder.WriteString(fmt.Sprintf("    <id>%s</id>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf(`    <link href="%s" />`+"\n", escapeXMLAttr(item.Link)))
		builder.WriteString(fmt.Sprintf("    <updated>%s</updated>\n", updated.Format(time.RFC3339)))
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("    <summary>%s</summary>\n", escapeXML(item.Summary)))
		}
		builder.WriteString("  </entry>\n")
	}
	builder.WriteString(`</feed>` + "\n")
	return []byte(builder.String()), nil
}

// FeedGenerator renders and writes the RSS and Atom feeds.
type FeedGenerator struct {
	posts  interfaces.PostService
	site   runtimeconfig.SiteConfig
	logger interfaces.Logger
	writer artifactWriter
	now    func() time.Time
}

// NewFeedGenerator wires a generator. A nil logger discards output.
func NewFeedGenerator(posts interfaces.PostService, site runtimeconfig.SiteConfig, logger interfaces.Logger) *FeedGenerator {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &FeedGenerator{posts: posts, site: site, logger: logger, writer: fileWriter{}, now: time.Now}
}

// WithClock overrides the build time.
func (g *FeedGenerator) WithClock(now func() time.Time) *FeedGenerator {
	if now != nil {
		g.now = now
	}
	return g
}

// WriteFiles writes feed.xml and feed.atom.xml into dir and returns the
// written paths.
func (g *FeedGenerator) WriteFiles(ctx context.Context, dir string) ([]string, error) {
	posts, err := g.posts.AllSorted(ctx)
	if err != nil {
		return nil, err
	}
	now := g.now()

	rss, err := BuildRSSFeed(g.site, posts, now)
	if err != nil {
		return nil, err
	}
	atom, err := BuildAtomFeed(g.site, posts, now)
	if err != nil {
		return nil, err
	}

	requests := []writeFileRequest{
		{Path: filepath.Join(dir, rssFeedFilename), Content: rss, Category: categoryFeed, ContentType: "application/rss+xml"},
		{Path: filepath.Join(dir, atomFeedFilename), Content: atom, Category: categoryFeed, ContentType: "application/atom+xml"},
	}
	written := make([]string, 0, len(requests))
	for _, req := range requests {
		if err := g.writer.WriteFile(ctx, req); err != nil {
			return written, err
		}
		written = append(written, req.Path)
	}
	g.logger.Info("generator.feeds.written", "dir", dir, "items", min(len(posts), maxFeedItems))
	return written, nil
}

// feedSummary returns the first paragraph of a post body as plain text.
func feedSummary(content string) string {
	var paragraph []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			if len(paragraph) > 0 {
				return truncateSummary(strings.Join(paragraph, " "))
			}
		case strings.HasPrefix(line, "#"), strings.HasPrefix(line, "```"):
			if len(paragraph) > 0 {
				return truncateSummary(strings.Join(paragraph, " "))
			}
		default:
			paragraph = append(paragraph, line)
		}
	}
	return truncateSummary(strings.Join(paragraph, " "))
}

func truncateSummary(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if utf8.RuneCountInString(value) <= maxSummaryRunes {
		return value
	}
	runes := []rune(value)
	return strings.TrimSpace(string(runes[:maxSummaryRunes])) + "…"
}

func feedTitle(site runtimeconfig.SiteConfig) string {
	if title := strings.TrimSpace(site.Title); title != "" {
		return title
	}
	if base := strings.TrimSpace(site.BaseURL); base != "" {
		return base
	}
	return defaultFeedTitle
}

func feedDescription(site runtimeconfig.SiteConfig) string {
	if desc := strings.TrimSpace(site.Description); desc != "" {
		return desc
	}
	return defaultFeedDetail
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}

func escapeXMLAttr(value string) string {
	return html.EscapeString(value)
}
