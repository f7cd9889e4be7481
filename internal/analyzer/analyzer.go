package analyzer

import (
	"log/slog"
	"strings"
)

// Pipeline runs the full rule-based analysis. It holds no state beyond a
// logger, so one Pipeline is safe for concurrent use across goroutines.
type Pipeline struct {
	log *slog.Logger
}

// New creates a Pipeline. A nil logger discards diagnostics.
func New(log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{log: log}
}

// Analyze converts one chapter into a fully populated lesson structure.
// It never fails: heuristics that find nothing substitute templated
// fallback content.
func (p *Pipeline) Analyze(doc SourceDocument) AnalysisResult {
	normalized := Normalize(doc.RawText)

	title := strings.TrimSpace(doc.TitleHint)
	if title == "" {
		title = ExtractTitle(normalized)
	}

	paragraphs := splitParagraphs(normalized)
	introduction := BuildIntroduction(paragraphs, title, doc.SubjectLabel)
	objectives := ExtractObjectives(normalized, title)
	concepts := ExtractConcepts(normalized, doc.SubjectLabel, title)
	sections := Segment(normalized, title)
	questions := SynthesizeQuestions(normalized, concepts, objectives, title, doc.SubjectLabel)

	wordCount := len(strings.Fields(normalized))

	p.log.Debug("chapter analyzed",
		"title", title,
		"word_count", wordCount,
		"sections", len(sections),
		"concepts", len(concepts),
		"objectives", len(objectives),
		"questions", len(questions),
	)

	return AnalysisResult{
		Title:           title,
		Introduction:    introduction,
		Objectives:      objectives,
		Concepts:        concepts,
		Sections:        sections,
		Questions:       questions,
		DurationMinutes: EstimateDuration(wordCount, doc.GradeLevel),
		Difficulty:      DetermineDifficulty(doc.GradeLevel),
		QualityScore:    QualityRuleBased,
	}
}
