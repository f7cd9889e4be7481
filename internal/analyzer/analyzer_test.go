package analyzer_test

import (
	"strings"
	"testing"

	"github.com/jln-hub/lessongen/internal/analyzer"
)

func TestPipeline_FractionsChapter(t *testing.T) {
	pipeline := analyzer.New(nil)

	result := pipeline.Analyze(analyzer.SourceDocument{
		RawText:      fractionsText,
		SubjectLabel: "Mathematics",
		GradeLabel:   "Grade 5",
		GradeLevel:   5,
		TitleHint:    "Introduction to Fractions",
	})

	if result.Title != "Introduction to Fractions" {
		t.Errorf("Title = %q, want title hint", result.Title)
	}
	checkSectionInvariants(t, result.Sections)
	checkQuestionInvariants(t, result.Questions)

	var kinds []analyzer.SectionKind
	for _, s := range result.Sections {
		kinds = append(kinds, s.Kind)
	}
	if !containsKind(kinds, analyzer.SectionExample) {
		t.Errorf("section kinds = %v, want an example section", kinds)
	}
	if !containsKind(kinds, analyzer.SectionPractice) {
		t.Errorf("section kinds = %v, want a practice section", kinds)
	}

	if len(result.Concepts) < 2 {
		t.Errorf("got %d concepts, want at least 2", len(result.Concepts))
	}
	foundPart := false
	for _, c := range result.Concepts {
		term := strings.ToLower(c.Term)
		def := strings.ToLower(c.Definition)
		if (strings.Contains(term, "numerator") && strings.Contains(def, "top number")) ||
			(strings.Contains(term, "denominator") && strings.Contains(def, "bottom number")) {
			foundPart = true
		}
	}
	if !foundPart {
		t.Errorf("concepts = %+v, want numerator/denominator with their definitions", result.Concepts)
	}

	if result.Difficulty != analyzer.LevelIntermediate {
		t.Errorf("Difficulty = %q, want intermediate for grade 5", result.Difficulty)
	}
	if result.DurationMinutes < 15 || result.DurationMinutes > 60 {
		t.Errorf("DurationMinutes = %d, want within [15, 60]", result.DurationMinutes)
	}
	if result.QualityScore != analyzer.QualityRuleBased {
		t.Errorf("QualityScore = %v, want %v", result.QualityScore, analyzer.QualityRuleBased)
	}
	if result.Introduction == "" {
		t.Error("Introduction is empty")
	}
	if len(result.Objectives) == 0 {
		t.Error("Objectives is empty")
	}
}

func TestPipeline_EmptyInput(t *testing.T) {
	pipeline := analyzer.New(nil)

	result := pipeline.Analyze(analyzer.SourceDocument{
		SubjectLabel: "Science",
		GradeLabel:   "Grade 2",
		GradeLevel:   2,
		TitleHint:    "Plants",
	})

	if len(result.Sections) != 2 {
		t.Fatalf("got %d sections for empty input, want exactly intro+summary", len(result.Sections))
	}
	if result.Sections[0].Kind != analyzer.SectionIntroduction || result.Sections[1].Kind != analyzer.SectionSummary {
		t.Errorf("section kinds = %q, %q, want introduction then summary", result.Sections[0].Kind, result.Sections[1].Kind)
	}

	if len(result.Questions) != 5 {
		t.Errorf("got %d questions for empty input, want exactly 5 fallbacks", len(result.Questions))
	}
	if len(result.Objectives) != 4 {
		t.Errorf("got %d objectives for empty input, want 4 templates", len(result.Objectives))
	}
	if len(result.Concepts) != 2 {
		t.Errorf("got %d concepts for empty input, want 2 placeholders", len(result.Concepts))
	}
	if result.Difficulty != analyzer.LevelBeginner {
		t.Errorf("Difficulty = %q, want beginner for grade 2", result.Difficulty)
	}
	if result.DurationMinutes != 15 {
		t.Errorf("DurationMinutes = %d, want the 15 minute floor", result.DurationMinutes)
	}
	if result.Introduction == "" {
		t.Error("Introduction is empty, want welcome template")
	}
}

func TestPipeline_TitleFallsBackToExtraction(t *testing.T) {
	pipeline := analyzer.New(nil)

	result := pipeline.Analyze(analyzer.SourceDocument{
		RawText:    "# The Solar System\n\nPlanets orbit the sun in elliptical paths that repeat forever.",
		GradeLevel: 6,
	})
	if result.Title != "The Solar System" {
		t.Errorf("Title = %q, want extracted markdown heading", result.Title)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"markdown heading", "# Plant Biology\n\nbody follows", "Plant Biology"},
		{"skips artifact heading", "## page break\n\n# Real Heading Here\n\nbody", "Real Heading Here"},
		{"title case line", "Introduction To Light\n\nlong body text follows here", "Introduction To Light"},
		{"all caps line", "PHOTOSYNTHESIS IN PLANTS\n\nbody", "Photosynthesis In Plants"},
		{"nothing usable", "just some plain lowercase text without structure", "New Lesson"},
		{"empty", "", "New Lesson"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.ExtractTitle(tt.input); got != tt.want {
				t.Errorf("ExtractTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildIntroduction_UsesFirstParagraph(t *testing.T) {
	paragraphs := []string{
		"Plants make their own food using sunlight, water and carbon dioxide from the air.",
	}
	got := analyzer.BuildIntroduction(paragraphs, "Photosynthesis", "Science")

	if !strings.Contains(got, "Photosynthesis") {
		t.Errorf("introduction = %q, want title referenced", got)
	}
	if !strings.Contains(got, "sunlight") {
		t.Errorf("introduction = %q, want first paragraph content", got)
	}
	if len(got) > 500 {
		t.Errorf("introduction length = %d, want at most 500", len(got))
	}
}

func TestBuildIntroduction_FallbackTemplate(t *testing.T) {
	got := analyzer.BuildIntroduction(nil, "Fractions", "Mathematics")

	if !strings.Contains(got, "Fractions") || !strings.Contains(got, "Mathematics") {
		t.Errorf("introduction = %q, want welcome template with title and subject", got)
	}
}

func TestBuildIntroduction_CutsLongParagraphAtSentence(t *testing.T) {
	long := strings.Repeat("This sentence talks about one aspect of the topic in detail. ", 12)
	got := analyzer.BuildIntroduction([]string{long}, "Topic", "Science")

	if len(got) > 500 {
		t.Errorf("introduction length = %d, want at most 500", len(got))
	}
	if !strings.HasSuffix(strings.TrimSpace(got), ".") {
		t.Errorf("introduction = %q, want sentence-boundary ending", got)
	}
}

func TestPipeline_SafeForConcurrentUse(t *testing.T) {
	pipeline := analyzer.New(nil)
	done := make(chan struct{})

	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 25; j++ {
				pipeline.Analyze(analyzer.SourceDocument{
					RawText:    fractionsText,
					GradeLevel: 5,
					TitleHint:  "Fractions",
				})
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
