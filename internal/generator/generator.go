// Package generator turns source documents into lessons. Two analyzer
// implementations exist: a deterministic rule-based pipeline and an
// external AI service, selected by configuration. The external analyzer
// falls back to rules when the service is unavailable or returns
// unusable output.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jln-hub/lessongen/internal/analyzer"
)

const (
	minContentWords  = 100
	longContentWords = 10000
)

// Analyzer produces a structured lesson from a source document.
type Analyzer interface {
	Analyze(ctx context.Context, doc analyzer.SourceDocument) (analyzer.AnalysisResult, error)
	Name() string
}

// RuleBased adapts the deterministic pipeline to the Analyzer interface.
type RuleBased struct {
	pipeline *analyzer.Pipeline
}

// NewRuleBased creates a rule-based analyzer.
func NewRuleBased(log *slog.Logger) *RuleBased {
	return &RuleBased{pipeline: analyzer.New(log)}
}

func (r *RuleBased) Analyze(_ context.Context, doc analyzer.SourceDocument) (analyzer.AnalysisResult, error) {
	return r.pipeline.Analyze(doc), nil
}

func (r *RuleBased) Name() string { return "rule-based" }

// Validation reports whether a document is suitable for lesson
// generation, with advisory warnings.
type Validation struct {
	IsValid   bool     `json:"is_valid"`
	WordCount int      `json:"word_count"`
	Warnings  []string `json:"warnings"`
}

// ValidateDocument checks that a document has enough content to work
// with. Short documents produce thin lessons; very long ones should be
// split by the author.
func ValidateDocument(doc analyzer.SourceDocument) Validation {
	words := len(strings.Fields(strings.TrimSpace(doc.RawText)))
	v := Validation{
		IsValid:   words >= minContentWords,
		WordCount: words,
		Warnings:  []string{},
	}
	if words < minContentWords {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Content too short (minimum %d words)", minContentWords))
	}
	if words > longContentWords {
		v.Warnings = append(v.Warnings, "Content very long, consider splitting")
	}
	return v
}
