// Package analyzer turns raw textbook chapter text into a structured,
// ready-to-publish lesson without calling any external model. It is the
// rule-based path of the lesson generator: a fixed pipeline of text
// cleanup, section segmentation, concept/objective extraction and
// question synthesis. Every function is pure and total; degenerate input
// produces templated fallback content instead of an error.
package analyzer

// SectionKind classifies a lesson section.
type SectionKind string

const (
	SectionIntroduction SectionKind = "introduction"
	SectionExplanation  SectionKind = "explanation"
	SectionExample      SectionKind = "example"
	SectionPractice     SectionKind = "practice"
	SectionSummary      SectionKind = "summary"
)

// QuestionKind classifies a generated question.
type QuestionKind string

const (
	QuestionMultipleChoice QuestionKind = "multiple_choice"
	QuestionTrueFalse      QuestionKind = "true_false"
)

// Difficulty is a per-question difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// LessonLevel is the overall difficulty tier of a lesson.
type LessonLevel string

const (
	LevelBeginner     LessonLevel = "beginner"
	LevelIntermediate LessonLevel = "intermediate"
	LevelAdvanced     LessonLevel = "advanced"
)

// SourceDocument is the immutable input to one pipeline run: a chapter's
// extracted text plus the labels the caller already knows about it.
type SourceDocument struct {
	RawText      string `json:"raw_text"`
	SubjectLabel string `json:"subject"`
	GradeLabel   string `json:"grade"`
	GradeLevel   int    `json:"grade_level"`
	TitleHint    string `json:"title"`
}

// Section is one ordered block of lesson content.
type Section struct {
	Kind  SectionKind `json:"type"`
	Title string      `json:"title"`
	Body  string      `json:"content"`
	Order int         `json:"order"`
}

// Concept is a (term, definition) pair surfaced from the chapter text.
type Concept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Question is a generated practice question. CorrectOption is always a
// member of Options; true/false questions always carry exactly
// ["True", "False"].
type Question struct {
	Kind          QuestionKind `json:"type"`
	Prompt        string       `json:"text"`
	Options       []string     `json:"options"`
	CorrectOption string       `json:"correct_answer"`
	Rationale     string       `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty"`
	Order         int          `json:"order"`
}

// AnalysisResult is the complete output of one pipeline run. It is always
// fully populated; persistence and identity are the caller's concern.
type AnalysisResult struct {
	Title           string      `json:"title"`
	Introduction    string      `json:"introduction"`
	Objectives      []string    `json:"learning_objectives"`
	Concepts        []Concept   `json:"key_concepts"`
	Sections        []Section   `json:"sections"`
	Questions       []Question  `json:"questions"`
	DurationMinutes int         `json:"estimated_duration"`
	Difficulty      LessonLevel `json:"difficulty_level"`
	QualityScore    float64     `json:"quality_score"`
}

// Quality scores distinguish result provenance, not statistical fit.
const (
	QualityRuleBased       = 0.75
	QualityExternalService = 0.9
)
