package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jln-hub/lessongen/internal/ai"
	"github.com/jln-hub/lessongen/internal/analyzer"
)

const (
	externalModel       = "gpt-4o-mini"
	externalMaxTokens   = 3500
	externalTemperature = 0.5
	maxPromptContent    = 8000
)

const systemPrompt = `You are an expert educational content specialist with deep expertise in:
- Curriculum design and instructional pedagogy
- Converting raw textbook content into engaging, structured digital lessons
- Creating age-appropriate learning materials for students across different grade levels
- Identifying key concepts, learning objectives, and assessment points from educational text

Your task is to analyze and transform extracted PDF textbook content into well-structured, interactive digital lessons.
Always maintain educational accuracy while making content engaging and accessible.
You must respond ONLY with valid JSON - no markdown, no code blocks, no explanations outside the JSON.`

var reJSONObject = regexp.MustCompile(`\{[\s\S]*\}`)

// ExternalService analyzes documents through an AI completion provider.
// Any failure along the way (transport, malformed JSON, schema
// violation) degrades to the rule-based pipeline so callers always get
// a lesson.
type ExternalService struct {
	provider ai.Provider
	fallback *RuleBased
	log      *slog.Logger
	schema   *gojsonschema.Schema
}

// NewExternalService creates an AI-backed analyzer with a rule-based
// fallback.
func NewExternalService(provider ai.Provider, log *slog.Logger) (*ExternalService, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(lessonSchema))
	if err != nil {
		return nil, fmt.Errorf("compile lesson schema: %w", err)
	}
	return &ExternalService{
		provider: provider,
		fallback: NewRuleBased(log),
		log:      log,
		schema:   schema,
	}, nil
}

func (s *ExternalService) Name() string { return "external-service" }

func (s *ExternalService) Analyze(ctx context.Context, doc analyzer.SourceDocument) (analyzer.AnalysisResult, error) {
	result, err := s.analyzeRemote(ctx, doc)
	if err != nil {
		if ctx.Err() != nil {
			return analyzer.AnalysisResult{}, ctx.Err()
		}
		s.log.Warn("external analysis failed, falling back to rules",
			slog.String("title", doc.TitleHint),
			slog.String("error", err.Error()))
		return s.fallback.Analyze(ctx, doc)
	}
	return result, nil
}

func (s *ExternalService) analyzeRemote(ctx context.Context, doc analyzer.SourceDocument) (analyzer.AnalysisResult, error) {
	content := truncateForPrompt(analyzer.Normalize(doc.RawText), maxPromptContent)

	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(doc, content)},
		},
		Model:        externalModel,
		MaxTokens:    externalMaxTokens,
		Temperature:  externalTemperature,
		JSONResponse: true,
	})
	if err != nil {
		return analyzer.AnalysisResult{}, fmt.Errorf("completion: %w", err)
	}

	payload, err := s.decode(resp.Content)
	if err != nil {
		return analyzer.AnalysisResult{}, err
	}
	return s.format(payload, doc), nil
}

// decode parses the provider reply, recovering a JSON object embedded
// in surrounding text (markdown fences and the like) when the reply is
// not pure JSON.
func (s *ExternalService) decode(content string) (externalLesson, error) {
	var payload externalLesson
	raw := content
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		match := reJSONObject.FindString(content)
		if match == "" {
			return externalLesson{}, fmt.Errorf("parse response: %w", err)
		}
		raw = match
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return externalLesson{}, fmt.Errorf("parse recovered response: %w", err)
		}
	}

	res, err := s.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return externalLesson{}, fmt.Errorf("validate response: %w", err)
	}
	if !res.Valid() {
		var reasons []string
		for _, e := range res.Errors() {
			reasons = append(reasons, e.String())
		}
		return externalLesson{}, fmt.Errorf("response violates lesson schema: %s", strings.Join(reasons, "; "))
	}
	return payload, nil
}

// truncateForPrompt keeps the beginning, middle, and end of long
// content so the model sees the full arc of the chapter.
func truncateForPrompt(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	third := limit / 3
	mid := len(content) / 2
	return content[:third] +
		"\n\n[... middle content ...]\n\n" +
		content[mid-third/2:mid+third/2] +
		"\n\n[... continued ...]\n\n" +
		content[len(content)-third:]
}

func buildPrompt(doc analyzer.SourceDocument, content string) string {
	return fmt.Sprintf(`Analyze the following educational content extracted from a PDF textbook and transform it into a structured digital lesson.

CONTEXT:
- Subject: %s
- Grade Level: %s (Grade %d)
- Chapter Title: %s

EXTRACTED CONTENT:
"""
%s
"""

YOUR TASK:
Carefully analyze the above content and create a comprehensive lesson structure. Pay attention to:
1. The main topic and subtopics
2. Key terminology and definitions
3. Examples and illustrations mentioned
4. Formulas, equations, or procedures
5. Any practice problems or exercises
6. Real-world applications

RESPOND WITH THIS EXACT JSON STRUCTURE:
{
    "title": "Clear, engaging title for the lesson",
    "introduction": "A 2-3 sentence engaging introduction that hooks the student and explains what they'll learn",
    "learning_objectives": [
        "Students will be able to [specific, measurable outcome 1]",
        "Students will be able to [specific, measurable outcome 2]",
        "Students will be able to [specific, measurable outcome 3]"
    ],
    "key_concepts": [
        {"term": "Concept Name", "definition": "Clear, student-friendly definition"},
        {"term": "Concept Name 2", "definition": "Clear, student-friendly definition"}
    ],
    "sections": [
        {"type": "introduction", "title": "Introduction", "content": "Opening content that introduces the topic", "order": 0},
        {"type": "explanation", "title": "Descriptive Section Title", "content": "Main explanatory content with clear explanations. Use simple language appropriate for the grade level. Include examples where relevant.", "order": 1},
        {"type": "example", "title": "Worked Example", "content": "Step-by-step example showing how to apply the concept", "order": 2},
        {"type": "practice", "title": "Practice Activity", "content": "Guided practice for students", "order": 3},
        {"type": "summary", "title": "Summary", "content": "Brief recap of key points learned", "order": 4}
    ],
    "questions": [
        {"type": "multiple_choice", "text": "Clear question text?", "options": ["Option A", "Option B", "Option C", "Option D"], "correct_answer": "Option A", "explanation": "Why this answer is correct", "difficulty": "easy"},
        {"type": "multiple_choice", "text": "Another question testing different concept?", "options": ["Option A", "Option B", "Option C", "Option D"], "correct_answer": "Option B", "explanation": "Clear explanation", "difficulty": "medium"},
        {"type": "true_false", "text": "Statement to evaluate as true or false", "options": ["True", "False"], "correct_answer": "True", "explanation": "Why this is true/false", "difficulty": "easy"}
    ],
    "estimated_duration": 30,
    "difficulty_level": "intermediate"
}

IMPORTANT GUIDELINES:
- Create at least 3-5 sections with meaningful content
- Generate at least 5 questions (mix of multiple_choice and true_false)
- Questions should directly test comprehension of the lesson content
- All content should be appropriate for Grade %d students
- Use clear, simple language
- If the content discusses specific facts, dates, formulas, or procedures, include them accurately
- difficulty_level should be "beginner" for grades 1-3, "intermediate" for grades 4-6, "advanced" for grades 7+
- estimated_duration should reflect actual lesson complexity (15-60 minutes)`,
		doc.SubjectLabel, doc.GradeLabel, doc.GradeLevel, doc.TitleHint, content, doc.GradeLevel)
}
