// Package markdown renders post bodies to HTML and extracts their heading
// outline. Both operate on the raw content held by a post and never touch
// the filesystem.
package markdown
