// Package slug derives URL-safe identifiers for job postings.
package slug

import (
	"strings"

	"github.com/gosimple/slug"
)

const (
	// MaxTitleRunes is how much of a title contributes to the slug.
	MaxTitleRunes = 128
	// MaxTitleLength caps the slugified title. Transliteration can expand a
	// single rune into several letters.
	MaxTitleLength = 128
	// MaxLength is the longest slug produced for a UUID id: the title part,
	// a dash and the 36 character UUID. It matches the jobs.slug column.
	MaxLength = MaxTitleLength + 1 + 36
)

// Generate returns "<slugified title>-<id>". The id is expected to be unique,
// which makes the result unique even when titles collide.
func Generate(id, title string) string {
	runes := []rune(title)
	if len(runes) > MaxTitleRunes {
		runes = runes[:MaxTitleRunes]
	}
	base := truncate(slug.Make(string(runes)), MaxTitleLength)
	if base == "" {
		return id
	}
	return base + "-" + id
}

// truncate cuts s to at most n runes without leaving a dangling separator.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRight(string(runes[:n]), "-_")
}
