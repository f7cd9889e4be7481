package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/jln-hub/lessongen/internal/analyzer"
)

// Lesson is a generated lesson with its provenance.
type Lesson struct {
	ID        string                  `json:"id"`
	Subject   string                  `json:"subject"`
	Grade     string                  `json:"grade"`
	ModelUsed string                  `json:"ai_model_used"`
	CreatedAt time.Time               `json:"created_at"`
	Result    analyzer.AnalysisResult `json:"lesson"`
}

// LessonStore persists generated lessons.
type LessonStore interface {
	SaveLesson(ctx context.Context, lesson *Lesson) error
	GetLesson(ctx context.Context, id string) (*Lesson, error)
}

// ResultCache caches analysis results keyed by content hash, so
// regenerating an unchanged chapter is free.
type ResultCache interface {
	GetResult(ctx context.Context, key string) (*analyzer.AnalysisResult, error)
	SetResult(ctx context.Context, key string, result analyzer.AnalysisResult) error
}

// ProgressEvent reports a generation stage to an observer, typically a
// websocket client watching a long-running generation.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ProgressFunc receives progress events. May be nil.
type ProgressFunc func(ProgressEvent)

// Service orchestrates validation, analysis, caching, and persistence.
type Service struct {
	analyzer Analyzer
	store    LessonStore
	cache    ResultCache
	log      *slog.Logger
}

// NewService creates a generation service. store and cache may be nil,
// disabling persistence and caching respectively.
func NewService(a Analyzer, store LessonStore, cache ResultCache, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{analyzer: a, store: store, cache: cache, log: log}
}

// Generate produces and persists a lesson for doc. Documents failing
// validation are rejected before any analysis runs.
func (s *Service) Generate(ctx context.Context, doc analyzer.SourceDocument, progress ProgressFunc) (*Lesson, error) {
	notify := func(stage, msg string) {
		if progress != nil {
			progress(ProgressEvent{Stage: stage, Message: msg})
		}
	}

	notify("validating", "Checking document content")
	v := ValidateDocument(doc)
	if !v.IsValid {
		return nil, fmt.Errorf("document not suitable for generation: %d words (minimum %d)", v.WordCount, minContentWords)
	}

	key := CacheKey(doc)
	result, cached := s.cachedResult(ctx, key)
	if cached {
		notify("analyzing", "Reusing cached analysis")
	} else {
		notify("analyzing", fmt.Sprintf("Analyzing content with %s analyzer", s.analyzer.Name()))
		var err error
		result, err = s.analyzer.Analyze(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("analyze document: %w", err)
		}
		s.cacheResult(ctx, key, result)
	}

	lesson := &Lesson{
		ID:        key[:16],
		Subject:   doc.SubjectLabel,
		Grade:     doc.GradeLabel,
		ModelUsed: s.analyzer.Name(),
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}

	if s.store != nil {
		notify("saving", "Persisting lesson")
		if err := s.store.SaveLesson(ctx, lesson); err != nil {
			return nil, fmt.Errorf("save lesson: %w", err)
		}
	}

	notify("done", "Lesson ready")
	s.log.Info("lesson generated",
		slog.String("lesson_id", lesson.ID),
		slog.String("title", result.Title),
		slog.Int("sections", len(result.Sections)),
		slog.Int("questions", len(result.Questions)),
		slog.Bool("cached", cached))
	return lesson, nil
}

// Lesson returns a previously generated lesson by ID.
func (s *Service) Lesson(ctx context.Context, id string) (*Lesson, error) {
	if s.store == nil {
		return nil, fmt.Errorf("lesson storage not configured")
	}
	return s.store.GetLesson(ctx, id)
}

func (s *Service) cachedResult(ctx context.Context, key string) (analyzer.AnalysisResult, bool) {
	if s.cache == nil {
		return analyzer.AnalysisResult{}, false
	}
	res, err := s.cache.GetResult(ctx, key)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("error", err.Error()))
		return analyzer.AnalysisResult{}, false
	}
	if res == nil {
		return analyzer.AnalysisResult{}, false
	}
	return *res, true
}

func (s *Service) cacheResult(ctx context.Context, key string, result analyzer.AnalysisResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetResult(ctx, key, result); err != nil {
		s.log.Warn("cache store failed", slog.String("error", err.Error()))
	}
}

// CacheKey derives a stable identifier from the document content and
// grade level. The grade participates because duration and difficulty
// depend on it.
func CacheKey(doc analyzer.SourceDocument) string {
	h := sha256.New()
	h.Write([]byte(doc.RawText))
	fmt.Fprintf(h, "|%s|%d", doc.TitleHint, doc.GradeLevel)
	return hex.EncodeToString(h.Sum(nil))
}
