package posts

import (
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	textCodePostNotFound  = "POST_NOT_FOUND"
	textCodeDuplicateSlug = "POST_DUPLICATE_SLUG"
	textCodeLoadFailed    = "POST_LOAD_FAILED"
)

func postNotFound(slug string) error {
	return goerrors.Wrap(&interfaces.NotFoundError{Resource: "post", Key: slug},
		goerrors.CategoryNotFound, "post lookup failed").
		WithTextCode(textCodePostNotFound).
		WithMetadata(map[string]any{"slug": slug})
}

func duplicateSlug(slug, first, duplicate string) *goerrors.Error {
	return goerrors.New("duplicate post slug", goerrors.CategoryConflict).
		WithTextCode(textCodeDuplicateSlug).
		WithMetadata(map[string]any{
			"slug":      slug,
			"file":      duplicate,
			"kept_file": first,
		})
}

func loadFailed(file string, err error) *goerrors.Error {
	wrapped := goerrors.Wrap(err, goerrors.CategoryInternal, "post load failed")
	if wrapped.TextCode == "" {
		wrapped = wrapped.WithTextCode(textCodeLoadFailed)
	}
	return wrapped.WithMetadata(map[string]any{"file": file})
}
