package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *ApiErr
		sentinel   error
		statusCode int
	}{
		{"already published", NewAlreadyPublishedError(), ErrAlreadyPublished, http.StatusConflict},
		{"archived immutable", NewArchivedImmutableError(), ErrArchivedImmutable, http.StatusConflict},
		{"not published", NewNotPublishedError(), ErrNotPublished, http.StatusConflict},
		{"already archived", NewAlreadyArchivedError(), ErrAlreadyArchived, http.StatusConflict},
		{"duplicate slug", NewDuplicateSlugError("hello-world"), ErrDuplicateSlug, http.StatusConflict},
		{"invalid slug", NewInvalidSlugError("Bad Slug", "uppercase"), ErrInvalidSlugFormat, http.StatusBadRequest},
		{"suggestion not found", NewSuggestionNotFoundError("excerpt"), ErrSuggestionNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.statusCode, tt.err.StatusCode)
			assert.True(t, errors.Is(tt.err, tt.sentinel), "ApiErr must unwrap to its sentinel")
		})
	}
}

func TestCheckersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("saving post: %w", NewAlreadyPublishedError())
	assert.True(t, IsAlreadyPublished(wrapped))
	assert.False(t, IsAlreadyArchived(wrapped))

	var apiErr *ApiErr
	require.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestApiErrMessageIncludesDetails(t *testing.T) {
	err := NewDuplicateSlugError("hello-world")
	assert.Contains(t, err.Error(), "slug is already in use")
	assert.Contains(t, err.Error(), "hello-world")
	assert.Equal(t, "slug", err.Field)
}

func TestDatabaseErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		statusCode int
	}{
		{"duplicate key", errors.New(`duplicate key value violates unique constraint "idx_blog_posts_slug"`), http.StatusConflict},
		{"foreign key", errors.New("violates foreign key constraint"), http.StatusBadRequest},
		{"not found", errors.New("record not found"), http.StatusNotFound},
		{"connection", errors.New("connection refused"), http.StatusServiceUnavailable},
		{"unknown", errors.New("something odd"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create blog post", "blog_post", tt.cause)
			assert.Equal(t, tt.statusCode, err.StatusCode)
			assert.Contains(t, err.GetFullError(), tt.cause.Error())
		})
	}
}
