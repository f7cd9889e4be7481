package analyzer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// titleCase renders a phrase in English title case ("grand canyon" ->
// "Grand Canyon"). Concept terms and recovered ALL-CAPS headings go
// through here so output casing is uniform.
func titleCase(s string) string {
	return titleCaser.String(s)
}

// capitalize upper-cases the first letter and lower-cases the rest of a
// sentence, matching how extracted objectives are presented.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// isTitleCase reports whether every cased word in the line starts with an
// upper-case letter followed by lower-case, e.g. "Introduction To Light".
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	sawCased := false
	for _, w := range words {
		r := []rune(w)
		if !unicode.IsLetter(r[0]) {
			continue
		}
		sawCased = true
		if !unicode.IsUpper(r[0]) {
			return false
		}
		for _, c := range r[1:] {
			if unicode.IsLetter(c) && !unicode.IsLower(c) {
				return false
			}
		}
	}
	return sawCased
}

// isAllCaps reports whether the line contains letters and no lower-case
// ones, e.g. "PHOTOSYNTHESIS IN PLANTS".
func isAllCaps(s string) bool {
	sawLetter := false
	for _, c := range s {
		if unicode.IsLetter(c) {
			sawLetter = true
			if !unicode.IsUpper(c) {
				return false
			}
		}
	}
	return sawLetter
}

// truncate cuts a string to at most n bytes. Inputs here are cleaned
// ASCII-leaning prose, so byte truncation matches the presentation rules.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
