package generator

import (
	"encoding/json"
	"fmt"

	"github.com/jln-hub/lessongen/internal/analyzer"
)

// externalLesson mirrors the JSON structure the AI service is asked to
// produce. Fields are loosely typed where models are known to drift.
type externalLesson struct {
	Title        string             `json:"title"`
	Introduction string             `json:"introduction"`
	Objectives   []string           `json:"learning_objectives"`
	Concepts     []externalConcept  `json:"key_concepts"`
	Sections     []externalSection  `json:"sections"`
	Questions    []externalQuestion `json:"questions"`
	Duration     json.Number        `json:"estimated_duration"`
	Difficulty   string             `json:"difficulty_level"`
}

// externalConcept accepts either {"term": ..., "definition": ...}
// objects or bare strings, both of which models produce in practice.
type externalConcept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

func (c *externalConcept) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Term = s
		c.Definition = ""
		return nil
	}
	type plain externalConcept
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = externalConcept(p)
	return nil
}

type externalSection struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   *int   `json:"order"`
}

type externalQuestion struct {
	Type          string   `json:"type"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Order         *int     `json:"order"`
}

// format normalizes a decoded AI response into an AnalysisResult,
// applying the same defaulting the rule-based pipeline guarantees.
func (s *ExternalService) format(payload externalLesson, doc analyzer.SourceDocument) analyzer.AnalysisResult {
	title := payload.Title
	if title == "" {
		title = doc.TitleHint
	}

	intro := payload.Introduction
	if intro == "" {
		intro = fmt.Sprintf("Welcome to this lesson on %s.", title)
	}

	objectives := payload.Objectives
	if len(objectives) == 0 {
		objectives = []string{"Understand the key concepts presented"}
	}

	concepts := make([]analyzer.Concept, 0, len(payload.Concepts))
	for _, c := range payload.Concepts {
		if c.Term == "" {
			continue
		}
		concepts = append(concepts, analyzer.Concept{Term: c.Term, Definition: c.Definition})
	}
	if len(concepts) == 0 {
		concepts = []analyzer.Concept{{Term: "Key Concept 1"}}
	}

	sections := make([]analyzer.Section, 0, len(payload.Sections))
	for i, sec := range payload.Sections {
		kind := analyzer.SectionKind(sec.Type)
		switch kind {
		case analyzer.SectionIntroduction, analyzer.SectionExplanation,
			analyzer.SectionExample, analyzer.SectionPractice, analyzer.SectionSummary:
		default:
			kind = analyzer.SectionExplanation
		}
		title := sec.Title
		if title == "" {
			title = fmt.Sprintf("Section %d", i+1)
		}
		order := i
		if sec.Order != nil {
			order = *sec.Order
		}
		sections = append(sections, analyzer.Section{
			Kind:  kind,
			Title: title,
			Body:  sec.Content,
			Order: order,
		})
	}

	questions := make([]analyzer.Question, 0, len(payload.Questions))
	for i, q := range payload.Questions {
		kind := analyzer.QuestionKind(q.Type)
		if kind != analyzer.QuestionMultipleChoice && kind != analyzer.QuestionTrueFalse {
			kind = analyzer.QuestionMultipleChoice
		}
		difficulty := analyzer.Difficulty(q.Difficulty)
		switch difficulty {
		case analyzer.DifficultyEasy, analyzer.DifficultyMedium, analyzer.DifficultyHard:
		default:
			difficulty = analyzer.DifficultyMedium
		}
		correct := q.CorrectAnswer
		if len(q.Options) > 0 && !containsOption(q.Options, correct) {
			correct = q.Options[0]
		}
		order := i
		if q.Order != nil {
			order = *q.Order
		}
		questions = append(questions, analyzer.Question{
			Kind:          kind,
			Prompt:        q.Text,
			Options:       q.Options,
			CorrectOption: correct,
			Rationale:     q.Explanation,
			Difficulty:    difficulty,
			Order:         order,
		})
	}

	level := analyzer.LessonLevel(payload.Difficulty)
	switch level {
	case analyzer.LevelBeginner, analyzer.LevelIntermediate, analyzer.LevelAdvanced:
	default:
		level = analyzer.LevelIntermediate
	}

	duration := 30
	if n, err := payload.Duration.Int64(); err == nil {
		duration = int(n)
		if duration < 15 {
			duration = 15
		}
		if duration > 60 {
			duration = 60
		}
	}

	return analyzer.AnalysisResult{
		Title:           title,
		Introduction:    intro,
		Objectives:      objectives,
		Concepts:        concepts,
		Sections:        sections,
		Questions:       questions,
		DurationMinutes: duration,
		Difficulty:      level,
		QualityScore:    analyzer.QualityExternalService,
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
