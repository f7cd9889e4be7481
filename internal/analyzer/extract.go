package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	maxObjectives      = 5
	maxConcepts        = 8
	minObjectiveChars  = 20
	maxObjectiveChars  = 200
	maxDefinitionChars = 200

	// Frequency floor for a capitalized phrase to count as a concept.
	// Empirically chosen; tunable.
	conceptFrequencyFloor = 2
	maxFrequentTerms      = 10
)

var objectivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:objective|goal|aim|learn|understand)s?:?\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)(?:by the end|after completing|students will|you will).*?:?\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)(?:this (?:lesson|chapter|unit) (?:will|covers?|teaches?)).*?:?\s*(.+?)(?:\n|$)`),
}

var (
	// "Photosynthesis is the process by which..." and
	// "Momentum: the product of mass and velocity." style definitions.
	reCopulaDef  = regexp.MustCompile(`([A-Z][a-zA-Z\s]+?)\s+(?:is|are|means?|refers?\s+to|can\s+be\s+defined\s+as)\s+([^.]+\.)`)
	reColonDef   = regexp.MustCompile(`([A-Z][a-zA-Z\s]+):\s+([^.]+\.)`)
	reArticleDef = regexp.MustCompile(`(?:A|The)\s+([a-zA-Z\s]+?)\s+is\s+([^.]+\.)`)

	reCapPhrase  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	reDashedSpan = regexp.MustCompile(`(?i)---.*?---`)
	reHashMarks  = regexp.MustCompile(`#{2,3}\s*`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

var phraseStopwords = map[string]struct{}{
	"This": {}, "That": {}, "These": {}, "Those": {}, "Then": {}, "There": {},
}

// ExtractObjectives surfaces learning objectives stated in the chapter
// text: explicit objective/goal markers, "students will" phrasing, and
// "this lesson covers" phrasing. Matches are capitalized, deduplicated in
// first-seen order and capped at five. Chapters that state no objectives
// get four generic ones built from the title.
func ExtractObjectives(text, titleHint string) []string {
	clean := reDashedSpan.ReplaceAllString(text, "")
	clean = reHashMarks.ReplaceAllString(clean, "")

	var objectives []string
	seen := make(map[string]struct{})
	for _, pattern := range objectivePatterns {
		for _, m := range pattern.FindAllStringSubmatch(clean, -1) {
			obj := strings.TrimSpace(reWhitespace.ReplaceAllString(m[1], " "))
			if len(obj) <= minObjectiveChars || len(obj) >= maxObjectiveChars {
				continue
			}
			lower := strings.ToLower(obj)
			if strings.Contains(lower, "page_break") || strings.Contains(lower, "page break") || strings.HasPrefix(obj, "---") {
				continue
			}
			obj = capitalize(obj)
			if _, dup := seen[obj]; dup {
				continue
			}
			seen[obj] = struct{}{}
			objectives = append(objectives, obj)
		}
	}

	if len(objectives) == 0 {
		objectives = []string{
			fmt.Sprintf("Understand the key concepts of %s", titleHint),
			fmt.Sprintf("Identify and explain important ideas related to %s", titleHint),
			fmt.Sprintf("Apply knowledge to answer questions about %s", titleHint),
			"Demonstrate comprehension through practice exercises",
		}
	}
	if len(objectives) > maxObjectives {
		objectives = objectives[:maxObjectives]
	}
	return objectives
}

// ExtractConcepts surfaces (term, definition) pairs: first explicit
// definition sentences, then frequently repeated capitalized phrases with
// a templated definition. Terms are deduplicated case-insensitively and
// the list is capped at eight; a chapter yielding nothing gets two
// generic placeholders.
func ExtractConcepts(text, subjectLabel, titleHint string) []Concept {
	var concepts []Concept
	seen := make(map[string]struct{})

	add := func(term, definition string) {
		term = titleCase(strings.TrimSpace(term))
		key := strings.ToLower(term)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		concepts = append(concepts, Concept{
			Term:       term,
			Definition: truncate(strings.TrimSpace(definition), maxDefinitionChars),
		})
	}

	for _, m := range reCopulaDef.FindAllStringSubmatch(text, -1) {
		if term, def := strings.TrimSpace(m[1]), strings.TrimSpace(m[2]); wordCount(term) >= 3 && wordCount(term) <= 5 && len(def) > 20 {
			add(term, def)
		}
	}
	for _, m := range reColonDef.FindAllStringSubmatch(text, -1) {
		if term, def := strings.TrimSpace(m[1]), strings.TrimSpace(m[2]); wordCount(term) >= 3 && wordCount(term) <= 5 && len(def) > 20 {
			add(term, def)
		}
	}
	// The article-led pattern keeps single-word terms ("The numerator is
	// the top number.") and tolerates short definitions.
	for _, m := range reArticleDef.FindAllStringSubmatch(text, -1) {
		if term, def := strings.TrimSpace(m[1]), strings.TrimSpace(m[2]); wordCount(term) >= 1 && wordCount(term) <= 4 && len(def) >= 10 {
			add(term, def)
		}
	}

	for _, term := range frequentPhrases(text) {
		if _, dup := seen[strings.ToLower(term)]; dup {
			continue
		}
		add(term, fmt.Sprintf("A key concept in %s related to %s", subjectLabel, titleHint))
	}

	if len(concepts) == 0 {
		concepts = []Concept{
			{Term: "Key Concept 1", Definition: fmt.Sprintf("Important concept in %s", titleHint)},
			{Term: "Key Concept 2", Definition: fmt.Sprintf("Related concept in %s", subjectLabel)},
		}
	}
	if len(concepts) > maxConcepts {
		concepts = concepts[:maxConcepts]
	}
	return concepts
}

// frequentPhrases returns capitalized multi-word phrases (minus a small
// stopword set) occurring at least conceptFrequencyFloor times, most
// frequent first, ties in first-seen order.
func frequentPhrases(text string) []string {
	counts := make(map[string]int)
	var order []string
	for _, phrase := range reCapPhrase.FindAllString(text, -1) {
		if len(phrase) <= 4 {
			continue
		}
		if _, stop := phraseStopwords[phrase]; stop {
			continue
		}
		if counts[phrase] == 0 {
			order = append(order, phrase)
		}
		counts[phrase]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxFrequentTerms {
		order = order[:maxFrequentTerms]
	}

	var out []string
	for _, phrase := range order {
		if counts[phrase] >= conceptFrequencyFloor {
			out = append(out, phrase)
		}
	}
	return out
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
