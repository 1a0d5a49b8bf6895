package generator

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is one <url> element.
type SitemapEntry struct {
	Location        string
	LastModified    time.Time
	ChangeFrequency string
	Priority        float64
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []urlElement `xml:"url"`
}

type urlElement struct {
	Location        string `xml:"loc"`
	LastModified    string `xml:"lastmod"`
	ChangeFrequency string `xml:"changefreq"`
	Priority        string `xml:"priority"`
}

// SitemapEntries lists the home page, the listing page and one entry per
// post in the given order. Posts without a date use now as lastmod.
func SitemapEntries(routes *Routes, posts []interfaces.Post, now time.Time) ([]SitemapEntry, error) {
	home, err := routes.Home()
	if err != nil {
		return nil, err
	}
	listing, err := routes.Listing()
	if err != nil {
		return nil, err
	}

	entries := make([]SitemapEntry, 0, len(posts)+2)
	entries = append(entries,
		SitemapEntry{Location: home, LastModified: now, ChangeFrequency: "weekly", Priority: 1.0},
		SitemapEntry{Location: listing, LastModified: now, ChangeFrequency: "weekly", Priority: 0.8},
	)
	for _, post := range posts {
		location, err := routes.Post(post.Slug)
		if err != nil {
			return nil, err
		}
		lastMod := now
		if post.UpdatedDate != nil {
			lastMod = *post.UpdatedDate
		}
		entries = append(entries, SitemapEntry{
			Location:        location,
			LastModified:    lastMod,
			ChangeFrequency: "monthly",
			Priority:        0.5,
		})
	}
	return entries, nil
}

// BuildSitemap renders the sitemap XML document for posts.
func BuildSitemap(site runtimeconfig.SiteConfig, posts []interfaces.Post, now time.Time) ([]byte, error) {
	routes, err := NewRoutes(site)
	if err != nil {
		return nil, err
	}
	entries, err := SitemapEntries(routes, posts, now)
	if err != nil {
		return nil, err
	}
	return encodeSitemap(entries)
}

func encodeSitemap(entries []SitemapEntry) ([]byte, error) {
	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]urlElement, 0, len(entries))}
	for _, entry := range entries {
		set.URLs = append(set.URLs, urlElement{
			Location:        entry.Location,
			LastModified:    entry.LastModified.UTC().Format(time.RFC3339),
			ChangeFrequency: entry.ChangeFrequency,
			Priority:        strconv.FormatFloat(entry.Priority, 'f', 1, 64),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(set); err != nil {
		return nil, fmt.Errorf("generator: encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// SitemapGenerator renders the sitemap from the post service.
type SitemapGenerator struct {
	posts  interfaces.PostService
	site   runtimeconfig.SiteConfig
	logger interfaces.Logger
	writer artifactWriter
	now    func() time.Time
}

// NewSitemapGenerator wires a generator. A nil logger discards output.
func NewSitemapGenerator(posts interfaces.PostService, site runtimeconfig.SiteConfig, logger interfaces.Logger) *SitemapGenerator {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &SitemapGenerator{posts: posts, site: site, logger: logger, writer: fileWriter{}, now: time.Now}
}

// WithClock overrides the build time used for undated entries.
func (g *SitemapGenerator) WithClock(now func() time.Time) *SitemapGenerator {
	if now != nil {
		g.now = now
	}
	return g
}

// Generate returns the sitemap XML of the current post index.
func (g *SitemapGenerator) Generate(ctx context.Context) ([]byte, error) {
	posts, err := g.posts.AllSorted(ctx)
	if err != nil {
		return nil, err
	}
	data, err := BuildSitemap(g.site, posts, g.now())
	if err != nil {
		return nil, err
	}
	g.logger.Debug("generator.sitemap.rendered", "posts", len(posts), "bytes", len(data))
	return data, nil
}

// WriteFile generates the sitemap and writes it to path, replacing any
// previous file.
func (g *SitemapGenerator) WriteFile(ctx context.Context, path string) error {
	data, err := g.Generate(ctx)
	if err != nil {
		return err
	}
	err = g.writer.WriteFile(ctx, writeFileRequest{
		Path:        path,
		Content:     data,
		Category:    categorySitemap,
		ContentType: "application/xml",
	})
	if err != nil {
		return err
	}
	g.logger.Info("generator.sitemap.written", "path", path, "bytes", len(data))
	return nil
}
