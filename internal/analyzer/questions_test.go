package analyzer_test

import (
	"strings"
	"testing"

	"github.com/jln-hub/lessongen/internal/analyzer"
)

// checkQuestionInvariants verifies the contract every synthesized
// question set honors: 5-8 questions, contiguous orders, correct answer
// always present among the options, true/false option sets fixed.
func checkQuestionInvariants(t *testing.T, questions []analyzer.Question) {
	t.Helper()

	if len(questions) < 5 || len(questions) > 8 {
		t.Fatalf("got %d questions, want between 5 and 8", len(questions))
	}
	for i, q := range questions {
		if q.Order != i {
			t.Errorf("questions[%d].Order = %d, want %d", i, q.Order, i)
		}
		if !containsOption(q.Options, q.CorrectOption) {
			t.Errorf("questions[%d] correct answer %q not in options %v", i, q.CorrectOption, q.Options)
		}
		if q.Kind == analyzer.QuestionTrueFalse {
			if len(q.Options) != 2 || q.Options[0] != "True" || q.Options[1] != "False" {
				t.Errorf("questions[%d] true/false options = %v, want [True False]", i, q.Options)
			}
		}
	}
}

func TestSynthesizeQuestions_FromConcepts(t *testing.T) {
	concepts := []analyzer.Concept{
		{Term: "Numerator", Definition: "the top number of a fraction"},
		{Term: "Denominator", Definition: "the bottom number of a fraction"},
	}

	questions := analyzer.SynthesizeQuestions("", concepts, nil, "Fractions", "Mathematics")
	checkQuestionInvariants(t, questions)

	if questions[0].Prompt != "What is Numerator?" {
		t.Errorf("first prompt = %q, want concept question", questions[0].Prompt)
	}
	if questions[0].Difficulty != analyzer.DifficultyEasy {
		t.Errorf("first concept question difficulty = %q, want easy", questions[0].Difficulty)
	}
	if questions[1].Difficulty != analyzer.DifficultyMedium {
		t.Errorf("second concept question difficulty = %q, want medium", questions[1].Difficulty)
	}
	if questions[0].CorrectOption != "the top number of a fraction" {
		t.Errorf("correct option = %q, want the definition", questions[0].CorrectOption)
	}
}

func TestSynthesizeQuestions_SkipsConceptsWithoutDefinition(t *testing.T) {
	concepts := []analyzer.Concept{{Term: "Orphan", Definition: ""}}

	questions := analyzer.SynthesizeQuestions("", concepts, nil, "Topic", "Science")
	for _, q := range questions {
		if strings.Contains(q.Prompt, "Orphan") {
			t.Errorf("question %q built from concept with empty definition", q.Prompt)
		}
	}
}

func TestSynthesizeQuestions_FromStatements(t *testing.T) {
	text := "Water expands by about nine percent when it freezes into solid ice. " +
		"Sound travels faster through water than it does through open air."

	questions := analyzer.SynthesizeQuestions(text, nil, nil, "Water", "Science")
	checkQuestionInvariants(t, questions)

	found := false
	for _, q := range questions {
		if q.Prompt == "According to the lesson, which statement is correct?" {
			found = true
			if len(q.Options) != 4 {
				t.Errorf("statement question options = %d, want 4", len(q.Options))
			}
		}
	}
	if !found {
		t.Error("no statement comprehension question generated")
	}
}

func TestSynthesizeQuestions_TrueFalseFromObjectives(t *testing.T) {
	objectives := []string{
		"Describe the stages of the water cycle",
		"Explain how clouds form",
		"Name the three states of matter",
	}

	questions := analyzer.SynthesizeQuestions("", nil, objectives, "The Water Cycle", "Science")
	checkQuestionInvariants(t, questions)

	tf := 0
	for _, q := range questions {
		if q.Kind == analyzer.QuestionTrueFalse {
			tf++
			if q.CorrectOption != "True" {
				t.Errorf("true/false correct answer = %q, want True", q.CorrectOption)
			}
			if !strings.Contains(q.Prompt, strings.ToLower(objectives[0])) && !strings.Contains(q.Prompt, strings.ToLower(objectives[1])) {
				t.Errorf("true/false prompt = %q, want built from an objective", q.Prompt)
			}
		}
	}
	// Only the first two objectives become questions.
	if tf != 2 {
		t.Errorf("got %d true/false questions, want 2", tf)
	}
}

func TestSynthesizeQuestions_PadsToMinimum(t *testing.T) {
	questions := analyzer.SynthesizeQuestions("", nil, nil, "Introduction to Fractions", "Mathematics")
	checkQuestionInvariants(t, questions)

	if len(questions) != 5 {
		t.Fatalf("got %d questions from empty input, want exactly 5 generic ones", len(questions))
	}
	for _, q := range questions {
		if q.CorrectOption != "Introduction to Fractions" {
			t.Errorf("generic question correct answer = %q, want the title hint", q.CorrectOption)
		}
	}
}

func TestSynthesizeQuestions_CapsAtEight(t *testing.T) {
	concepts := []analyzer.Concept{
		{Term: "Alpha", Definition: "the first named stage of the process"},
		{Term: "Beta", Definition: "the second named stage of the process"},
		{Term: "Gamma", Definition: "the third named stage of the process"},
		{Term: "Delta", Definition: "the fourth named stage of the process"},
	}
	objectives := []string{"Objective one for this lesson", "Objective two for this lesson"}
	text := "Stages follow each other in a strict order during the process. " +
		"Energy moves between stages whenever the process advances forward. " +
		"Matter changes form at every single stage along the whole sequence. " +
		"Scientists label each stage with a letter from the Greek alphabet."

	questions := analyzer.SynthesizeQuestions(text, concepts, objectives, "Stages", "Science")
	checkQuestionInvariants(t, questions)

	if len(questions) != 8 {
		t.Errorf("got %d questions, want capped at 8", len(questions))
	}
}

func containsOption(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
