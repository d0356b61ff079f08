// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives category slugs from display names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen is the longest slug Generate returns.
const MaxLen = 100

var (
	// separators become hyphens: whitespace, underscores and slashes.
	separators = regexp.MustCompile(`[\s_/]+`)
	// disallowed matches anything left that isn't a letter, digit or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string. Accents are
// folded to their base letters and the result is cut at a word boundary
// to at most MaxLen bytes.
// Example: "Café Tools / 2026" → "cafe-tools-2026"
func Generate(s string) string {
	result := foldAccents(strings.TrimSpace(s))
	result = strings.ToLower(result)
	result = separators.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return truncate(result)
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func truncate(s string) string {
	if len(s) <= MaxLen {
		return s
	}
	cut := s[:MaxLen]
	if i := strings.LastIndexByte(cut, '-'); i > 0 && s[MaxLen] != '-' {
		cut = cut[:i]
	}
	return strings.Trim(cut, "-")
}
