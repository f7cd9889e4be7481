package analyzer

import (
	"regexp"
	"strings"
)

// PDF extraction leaves predictable debris behind: page-break markers,
// words hyphenated across line breaks, runs of spaces, bare page numbers
// and header/footer boilerplate. Each cleanup rule is its own function so
// it can be tested alone; Normalize composes them in a fixed order that
// later rules rely on (boilerplate removal leaves blank lines for the
// final blank-line collapse to absorb).

var (
	rePageBreak   = regexp.MustCompile(`(?i)---\s*page[\s_]*break\s*---`)
	rePageMarker  = regexp.MustCompile(`(?i)---\s*Page\s*\d+\s*---`)
	reHyphenBreak = regexp.MustCompile(`(\w+)-\n(\w+)`)
	reSpaceRuns   = regexp.MustCompile(` {3,}`)
	reTightPeriod = regexp.MustCompile(`\.([A-Z])`)
	reBulletGlyph = regexp.MustCompile(`(?m)^[\x{2022}\x{2023}\x{25E6}\x{2043}\x{2219}●○◦▪▸►]\s*`)
	rePageNumber  = regexp.MustCompile(`(?m)^\d{1,3}\s*$`)
	reBoilerplate = regexp.MustCompile(`(?mi)^(Chapter \d+|Page \d+|Copyright.*|All rights reserved.*)$`)
	reBareHashes  = regexp.MustCompile(`(?m)^##\s*$|^###\s*$`)
	reBlankRuns   = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans raw extracted chapter text. It is total: the worst
// case is the trimmed input unchanged. Normalize(Normalize(x)) ==
// Normalize(x) for any x.
func Normalize(raw string) string {
	s := stripPageBreaks(raw)
	s = rejoinHyphenation(s)
	s = collapseSpaces(s)
	s = fixSentenceSpacing(s)
	s = normalizeBullets(s)
	s = dropPageNumbers(s)
	s = dropBoilerplate(s)
	s = collapseBlankLines(s)
	return strings.TrimSpace(s)
}

func stripPageBreaks(s string) string {
	s = rePageBreak.ReplaceAllString(s, "")
	return rePageMarker.ReplaceAllString(s, "")
}

func rejoinHyphenation(s string) string {
	return reHyphenBreak.ReplaceAllString(s, "$1$2")
}

func collapseSpaces(s string) string {
	return reSpaceRuns.ReplaceAllString(s, "  ")
}

func fixSentenceSpacing(s string) string {
	return reTightPeriod.ReplaceAllString(s, ". $1")
}

func normalizeBullets(s string) string {
	return reBulletGlyph.ReplaceAllString(s, "• ")
}

func dropPageNumbers(s string) string {
	return rePageNumber.ReplaceAllString(s, "")
}

func dropBoilerplate(s string) string {
	s = reBoilerplate.ReplaceAllString(s, "")
	return reBareHashes.ReplaceAllString(s, "")
}

func collapseBlankLines(s string) string {
	return reBlankRuns.ReplaceAllString(s, "\n\n")
}
