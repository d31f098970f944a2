package lifecycle

import (
	"strings"
	"unicode"

	"github.com/avisser/personal-site-backend/errs"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength is the maximum length of a post, category or tag slug.
const MaxSlugLength = 200

// deaccent decomposes to NFD and drops combining marks, so "café" slugs as
// "cafe" rather than losing the rune entirely.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// GenerateSlug derives a URL-safe slug from free text: lowercase, strip
// diacritics, whitespace runs become single hyphens, everything outside
// [a-z0-9-] is dropped, repeated hyphens collapse, and the result is trimmed
// and truncated to MaxSlugLength. Idempotent: feeding a generated slug back
// in returns it unchanged.
func GenerateSlug(text string) string {
	s := strings.ToLower(text)

	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// All other characters are stripped.
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
		// Truncation may expose a new trailing hyphen.
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}

// ValidateSlug checks a slug against the format rules and returns the first
// violation found, or nil if the slug is valid.
func ValidateSlug(slug string) *errs.ApiErr {
	if slug == "" {
		return errs.NewInvalidSlugError(slug, "slug cannot be empty")
	}
	if len(slug) > MaxSlugLength {
		return errs.NewInvalidSlugError(slug, "slug exceeds 200 characters")
	}
	for _, r := range slug {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return errs.NewInvalidSlugError(slug, "slug may only contain lowercase letters, digits and hyphens")
		}
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return errs.NewInvalidSlugError(slug, "slug cannot start or end with a hyphen")
	}
	if strings.Contains(slug, "--") {
		return errs.NewInvalidSlugError(slug, "slug cannot contain consecutive hyphens")
	}
	return nil
}
