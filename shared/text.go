package shared

import (
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinBodyLen   = 1
	MaxBodyLen   = 280
	MinHandleLen = 3
	MaxHandleLen = 30
)

var reHandle = regexp.MustCompile("^[a-z0-9_]{3,30}$")

// StrictPolicy is safe for concurrent use once built.
var stripMarkup = bluemonday.StrictPolicy()

// NormalizeBody NFC-normalizes and trims. The text is otherwise kept as written.
func NormalizeBody(body string) string {
	return strings.TrimSpace(norm.NFC.String(body))
}

// CleanDisplayName strips markup from names mirrored from the identity provider.
func CleanDisplayName(name string) string {
	return NormalizeBody(html.UnescapeString(stripMarkup.Sanitize(name)))
}

// ValidateBody returns the normalized body, or a ValidationError for field ("drop", "ripple").
func ValidateBody(field, body string) (string, error) {
	normalized := NormalizeBody(body)
	n := utf8.RuneCountInString(normalized)
	if n < MinBodyLen || n > MaxBodyLen {
		return "", &ValidationError{Field: field, Min: MinBodyLen, Max: MaxBodyLen, Length: n}
	}
	return normalized, nil
}

// NormalizeHandle lowercases and validates; the store enforces uniqueness.
func NormalizeHandle(handle string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(handle))
	if !reHandle.MatchString(normalized) {
		return "", &ValidationError{
			Field:  "handle",
			Min:    MinHandleLen,
			Max:    MaxHandleLen,
			Length: utf8.RuneCountInString(normalized),
			Detail: "lowercase letters, numbers, underscores",
		}
	}
	return normalized, nil
}

func TruncateWithEllipsis(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	// https://stackoverflow.com/a/73939904/7479498
	lastSpaceIx := maxLen
	len := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			lastSpaceIx = i
		}
		len++
		if len > maxLen {
			return text[:lastSpaceIx] + "…"
		}
	}
	// If here, string is shorter or equal to maxLen
	return text
}
