package posts

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var titlePattern = regexp.MustCompile(`(?m)^# (.+)$`)

// ExtractTitle returns the text of the first line starting with "# ".
// Deeper headings never match. Content without such a line is titled
// interfaces.UntitledPost.
func ExtractTitle(content string) string {
	match := titlePattern.FindStringSubmatch(content)
	if match == nil {
		return interfaces.UntitledPost
	}
	title := strings.TrimSuffix(match[1], "\r")
	if title == "" {
		return interfaces.UntitledPost
	}
	return title
}

// SlugFromFile strips the .md extension from a file name.
func SlugFromFile(name string) string {
	return strings.TrimSuffix(name, ".md")
}
