package generator

import (
	"fmt"
	"net/url"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

const (
	siteGroup    = "site"
	routeHome    = "home"
	routeListing = "posts"
)

// Routes builds the public URLs of the blog.
type Routes struct {
	manager       *urlkit.RouteManager
	trailingSlash bool
}

// NewRoutes registers the home, listing and post routes under the site
// base URL.
func NewRoutes(site runtimeconfig.SiteConfig) (*Routes, error) {
	base := strings.TrimRight(strings.TrimSpace(site.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("generator: site base URL is required")
	}
	listing := "/" + strings.Trim(strings.TrimSpace(site.PostsPath), "/")
	if listing == "/" {
		listing = "/posts"
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    siteGroup,
			BaseURL: base,
			Paths: map[string]string{
				routeHome:    "/",
				routeListing: listing,
			},
		}},
	})
	return &Routes{manager: manager, trailingSlash: site.TrailingSlash}, nil
}

// Home returns the site root, always with a trailing slash.
func (r *Routes) Home() (string, error) {
	home, err := r.build(routeHome)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(home, "/") + "/", nil
}

// Listing returns the URL of the post listing page.
func (r *Routes) Listing() (string, error) {
	listing, err := r.build(routeListing)
	if err != nil {
		return "", err
	}
	return r.slash(listing), nil
}

// Post returns the URL of the post page for slug. The slug is one path
// segment, escaped exactly once. urlkit escapes rendered params again when
// joining them to the base URL, so the segment is appended here instead.
func (r *Routes) Post(slug string) (string, error) {
	if strings.TrimSpace(slug) == "" {
		return "", fmt.Errorf("generator: post slug is required")
	}
	listing, err := r.build(routeListing)
	if err != nil {
		return "", err
	}
	return r.slash(strings.TrimRight(listing, "/") + "/" + url.PathEscape(slug)), nil
}

func (r *Routes) slash(link string) string {
	link = strings.TrimRight(link, "/")
	if r.trailingSlash {
		return link + "/"
	}
	return link
}

func (r *Routes) build(route string) (link string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			link, err = "", fmt.Errorf("generator: route %q unavailable: %v", route, rec)
		}
	}()

	return r.manager.Group(siteGroup).Builder(route).Build()
}
