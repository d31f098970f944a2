package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Post lifecycle and slug errors. All are terminal and user-facing: the
// handler surfaces the message directly, nothing retries them internally.
var (
	ErrAlreadyPublished   = errors.New("post is already published")
	ErrArchivedImmutable  = errors.New("archived posts cannot change publication state")
	ErrNotPublished       = errors.New("post is not published")
	ErrAlreadyArchived    = errors.New("post is already archived")
	ErrDuplicateSlug      = errors.New("slug is already in use")
	ErrInvalidSlugFormat  = errors.New("invalid slug format")
	ErrSuggestionNotFound = errors.New("no suggestion exists for this field")
)

func NewAlreadyPublishedError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusConflict, err: ErrAlreadyPublished}
}

func NewArchivedImmutableError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusConflict, err: ErrArchivedImmutable}
}

func NewNotPublishedError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusConflict, err: ErrNotPublished}
}

func NewAlreadyArchivedError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusConflict, err: ErrAlreadyArchived}
}

func NewDuplicateSlugError(slug string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrDuplicateSlug,
		Details:    fmt.Sprintf("A post with slug '%s' already exists", slug),
		Field:      "slug",
	}
}

func NewInvalidSlugError(slug, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidSlugFormat,
		Details:    fmt.Sprintf("Slug '%s' is invalid: %s", slug, reason),
		Field:      "slug",
	}
}

func NewSuggestionNotFoundError(fieldPath string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrSuggestionNotFound,
		Details:    fmt.Sprintf("No suggestion exists for field '%s'", fieldPath),
		Field:      fieldPath,
	}
}

func IsAlreadyPublished(err error) bool {
	return errors.Is(err, ErrAlreadyPublished)
}

func IsArchivedImmutable(err error) bool {
	return errors.Is(err, ErrArchivedImmutable)
}

func IsNotPublished(err error) bool {
	return errors.Is(err, ErrNotPublished)
}

func IsAlreadyArchived(err error) bool {
	return errors.Is(err, ErrAlreadyArchived)
}

func IsDuplicateSlug(err error) bool {
	return errors.Is(err, ErrDuplicateSlug)
}

func IsInvalidSlugFormat(err error) bool {
	return errors.Is(err, ErrInvalidSlugFormat)
}

func IsSuggestionNotFound(err error) bool {
	return errors.Is(err, ErrSuggestionNotFound)
}
