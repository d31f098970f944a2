package lifecycle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "punctuation and digits",
			input:    "Hello, World! 2024",
			expected: "hello-world-2024",
		},
		{
			name:     "consecutive separators collapse",
			input:    "a  --  b",
			expected: "a-b",
		},
		{
			name:     "leading and trailing separators trimmed",
			input:    "  --hello--  ",
			expected: "hello",
		},
		{
			name:     "diacritics folded to ascii",
			input:    "Café au Lait",
			expected: "cafe-au-lait",
		},
		{
			name:     "underscores dropped",
			input:    "snake_case_title",
			expected: "snakecasetitle",
		},
		{
			name:     "non-latin characters dropped",
			input:    "héllo 世界 world",
			expected: "hello-world",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only punctuation",
			input:    "!!! ???",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	inputs := []string{"Hello, World! 2024", "Café au Lait", "already-a-slug"}
	for _, input := range inputs {
		once := GenerateSlug(input)
		assert.Equal(t, once, GenerateSlug(once), "slug of a slug must be itself: %q", input)
	}
}

func TestGenerateSlugTruncation(t *testing.T) {
	long := strings.Repeat("word ", 100)
	slug := GenerateSlug(long)
	require.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"), "truncation must not leave a trailing hyphen")
	assert.Nil(t, ValidateSlug(slug))
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{name: "valid", slug: "hello-world-2024", wantErr: false},
		{name: "single segment", slug: "hello", wantErr: false},
		{name: "empty", slug: "", wantErr: true},
		{name: "uppercase", slug: "Hello-World", wantErr: true},
		{name: "leading hyphen", slug: "-hello", wantErr: true},
		{name: "trailing hyphen", slug: "hello-", wantErr: true},
		{name: "consecutive hyphens", slug: "hello--world", wantErr: true},
		{name: "underscore", slug: "hello_world", wantErr: true},
		{name: "space", slug: "hello world", wantErr: true},
		{name: "too long", slug: strings.Repeat("a", MaxSlugLength+1), wantErr: true},
		{name: "at limit", slug: strings.Repeat("a", MaxSlugLength), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, 400, err.StatusCode)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}
