package analyzer

import (
	"fmt"
	"strings"
)

// Tunable segmentation thresholds. The values match the behavior the
// content team signed off on; they are not load-bearing.
const (
	minParagraphChars   = 20
	cueWindowChars      = 100
	introExcerptChars   = 400
	flushParagraphCount = 3
	flushBufferChars    = 1000
	maxSummaryTopics    = 4
	maxHeadingChars     = 80
)

var exampleCues = []string{"example", "for instance", "consider", "let us", "suppose"}

var practiceCues = []string{"exercise", "practice", "try this", "solve", "calculate", "activity"}

// Segment splits normalized chapter text into an ordered sequence of
// lesson sections. Every result opens with exactly one introduction and
// closes with exactly one summary; Order fields are contiguous from 0.
func Segment(normalized, titleHint string) []Section {
	paragraphs := splitParagraphs(normalized)
	if len(paragraphs) == 0 {
		paragraphs = []string{"Content for " + titleHint}
	}

	headings := detectHeadings(normalized)
	nextTitle := sectionTitler(headings)

	var sections []Section

	intro := paragraphs[0]
	if len(intro) > introExcerptChars {
		intro = intro[:introExcerptChars]
	}
	sections = append(sections, Section{
		Kind:  SectionIntroduction,
		Title: "Introduction",
		Body:  fmt.Sprintf("In this lesson, we will explore %s. %s", titleHint, intro),
	})

	var buffer []string
	flush := func(title string) {
		if len(buffer) == 0 {
			return
		}
		sections = append(sections, Section{
			Kind:  SectionExplanation,
			Title: title,
			Body:  strings.Join(buffer, "\n\n"),
		})
		buffer = nil
	}

	for _, para := range paragraphs[1:] {
		switch classifyParagraph(para) {
		case SectionExample:
			flush(nextTitle())
			sections = append(sections, Section{
				Kind:  SectionExample,
				Title: "Worked Example",
				Body:  para,
			})
		case SectionPractice:
			flush(nextTitle())
			sections = append(sections, Section{
				Kind:  SectionPractice,
				Title: "Practice Activity",
				Body:  para,
			})
		default:
			buffer = append(buffer, para)
			if len(buffer) >= flushParagraphCount || totalLen(buffer) > flushBufferChars {
				flush(nextTitle())
			}
		}
	}
	flush("Additional Concepts")

	sections = append(sections, Section{
		Kind:  SectionSummary,
		Title: "Summary",
		Body:  summaryBody(sections, titleHint),
	})

	for i := range sections {
		sections[i].Order = i
	}
	return sections
}

// splitParagraphs cuts on blank-line boundaries and discards fragments
// too short to be real prose.
func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if len(p) > minParagraphChars {
			out = append(out, p)
		}
	}
	return out
}

// classifyParagraph scans the opening of a paragraph for example or
// practice cues; everything else is explanation material.
func classifyParagraph(para string) SectionKind {
	window := strings.ToLower(para)
	if len(window) > cueWindowChars {
		window = window[:cueWindowChars]
	}
	for _, cue := range exampleCues {
		if strings.Contains(window, cue) {
			return SectionExample
		}
	}
	for _, cue := range practiceCues {
		if strings.Contains(window, cue) {
			return SectionPractice
		}
	}
	return SectionExplanation
}

// detectHeadings collects short lines that look like section headings:
// Title-Case lines, ALL-CAPS lines of two or more words, or lines ending
// in a colon. Page/break artifacts are excluded.
func detectHeadings(text string) []string {
	var headings []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 3 || len(line) >= maxHeadingChars {
			continue
		}
		if isArtifactLine(line) {
			continue
		}
		switch {
		case strings.HasSuffix(line, ":"):
			headings = append(headings, strings.TrimSuffix(line, ":"))
		case isTitleCase(line):
			headings = append(headings, line)
		case isAllCaps(line) && len(strings.Fields(line)) >= 2:
			headings = append(headings, titleCase(line))
		}
	}
	return headings
}

// sectionTitler returns a function yielding the next usable detected
// heading, or a synthesized title once headings run out. Chapters with no
// usable headings at all are expected; every explanation section then
// gets a synthesized title.
func sectionTitler(headings []string) func() string {
	index := 0
	counter := 0
	return func() string {
		counter++
		for index < len(headings) {
			candidate := headings[index]
			index++
			lower := strings.ToLower(candidate)
			if len(candidate) > 3 && !strings.HasPrefix(lower, "page") && !strings.Contains(lower, "break") && !strings.HasPrefix(candidate, "---") {
				return candidate
			}
		}
		return fmt.Sprintf("Section %d: Key Concepts", counter)
	}
}

// summaryBody lists the first few explanation topics plus a closing
// sentence referencing the lesson title.
func summaryBody(sections []Section, titleHint string) string {
	var topics []string
	for _, s := range sections {
		if s.Kind != SectionExplanation {
			continue
		}
		if s.Title == "Additional Concepts" || s.Title == "Additional Information" {
			continue
		}
		lower := strings.ToLower(s.Title)
		if strings.Contains(lower, "page") || strings.Contains(lower, "break") {
			continue
		}
		topics = append(topics, s.Title)
		if len(topics) == maxSummaryTopics {
			break
		}
	}

	body := fmt.Sprintf("In this lesson, you learned about %s.", titleHint)
	if len(topics) > 0 {
		body += "\n\nKey topics covered:\n• " + strings.Join(topics, "\n• ")
	}
	return body
}

func isArtifactLine(line string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(line, "---") ||
		strings.Contains(lower, "page") && strings.Contains(lower, "break")
}

func totalLen(parts []string) int {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	return n
}
