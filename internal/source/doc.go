// Package source reads blog posts from a single directory of Markdown files
// and resolves their last modification date through a fallback chain of
// version-control history and filesystem metadata.
package source
