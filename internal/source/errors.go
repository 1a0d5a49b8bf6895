package source

import (
	"errors"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	// TextCodeSourceUnavailable marks a directory that could not be listed.
	TextCodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	// TextCodeFileNotFound marks a file that disappeared after listing.
	TextCodeFileNotFound = "SOURCE_FILE_NOT_FOUND"
	// TextCodeFileUnreadable marks any other read failure.
	TextCodeFileUnreadable = "SOURCE_FILE_UNREADABLE"
)

func sourceUnavailable(dir string, err error) error {
	category := goerrors.CategoryInternal
	if errors.Is(err, fs.ErrNotExist) {
		category = goerrors.CategoryNotFound
	}
	return goerrors.Wrap(err, category, "posts directory unavailable").
		WithTextCode(TextCodeSourceUnavailable).
		WithMetadata(map[string]any{"dir": dir})
}

func readFailure(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return goerrors.Wrap(&interfaces.NotFoundError{Resource: "file", Key: name},
			goerrors.CategoryNotFound, "post file not found").
			WithTextCode(TextCodeFileNotFound).
			WithMetadata(map[string]any{"file": name, "cause": err.Error()})
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "post file unreadable").
		WithTextCode(TextCodeFileUnreadable).
		WithMetadata(map[string]any{"file": name})
}

// IsSourceUnavailable reports whether err came from a failed directory
// listing.
func IsSourceUnavailable(err error) bool {
	var typed *goerrors.Error
	if !goerrors.As(err, &typed) {
		return false
	}
	return typed.TextCode == TextCodeSourceUnavailable
}
