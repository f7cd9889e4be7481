package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	titleScanLines    = 10
	maxTitleChars     = 80
	maxIntroChars     = 500
	introCutoffChars  = 350
	introWindowChars  = 400
	minIntroParaChars = 50
)

var reMarkdownHeading = regexp.MustCompile(`^#{1,3}\s+(.+)$`)

// ExtractTitle finds a lesson title in normalized chapter text: a
// markdown heading anywhere, then a short Title-Case or ALL-CAPS line
// near the top. Used when the caller supplies no title hint.
func ExtractTitle(normalized string) string {
	lines := strings.Split(normalized, "\n")

	for _, line := range lines {
		m := reMarkdownHeading.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[1])
		lower := strings.ToLower(title)
		if len(title) > 5 && !strings.Contains(lower, "page") && !strings.Contains(lower, "break") && !strings.HasPrefix(title, "---") {
			return title
		}
	}

	scan := lines
	if len(scan) > titleScanLines {
		scan = scan[:titleScanLines]
	}
	for _, line := range scan {
		line = strings.TrimSpace(line)
		if len(line) < 5 || strings.HasPrefix(line, "---") || strings.Contains(strings.ToLower(line), "page") {
			continue
		}
		if len(line) < maxTitleChars {
			if isAllCaps(line) {
				return titleCase(line)
			}
			if isTitleCase(line) {
				return line
			}
		}
	}

	return "New Lesson"
}

// BuildIntroduction writes the lesson's standalone introduction from the
// first substantial paragraph, cut near a sentence boundary.
func BuildIntroduction(paragraphs []string, titleHint, subjectLabel string) string {
	var first string
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if len(p) > minIntroParaChars && !strings.HasPrefix(p, "---") && !isArtifactLine(p) {
			first = p
			break
		}
	}
	if first == "" {
		return fmt.Sprintf(
			"Welcome to this lesson on %s. In this lesson, you will learn about important concepts in %s.",
			titleHint, subjectLabel,
		)
	}

	first = reDashedSpan.ReplaceAllString(first, "")
	first = strings.TrimSpace(reWhitespace.ReplaceAllString(first, " "))

	if len(first) > introCutoffChars {
		window := truncate(first, introWindowChars)
		if sentences := strings.Split(window, "."); len(sentences) > 1 {
			first = strings.Join(sentences[:len(sentences)-1], ".") + "."
		} else {
			first = truncate(first, introCutoffChars) + "..."
		}
	}

	return truncate(fmt.Sprintf("In this lesson, we'll explore %s. %s", titleHint, first), maxIntroChars)
}
