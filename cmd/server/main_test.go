package main

import (
	"log/slog"
	"testing"

	"github.com/jln-hub/lessongen/internal/platform/config"
)

func TestBuildAnalyzer(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	cfg := &config.Config{Generator: config.GeneratorConfig{Mode: "rules"}}
	a, err := buildAnalyzer(cfg, logger)
	if err != nil {
		t.Fatalf("buildAnalyzer(rules) error = %v", err)
	}
	if a.Name() != "rule-based" {
		t.Errorf("Name() = %q, want rule-based", a.Name())
	}

	cfg = &config.Config{Generator: config.GeneratorConfig{Mode: "external"}}
	cfg.AI.OpenAI.APIKey = "sk-test"
	a, err = buildAnalyzer(cfg, logger)
	if err != nil {
		t.Fatalf("buildAnalyzer(external) error = %v", err)
	}
	if a.Name() != "external-service" {
		t.Errorf("Name() = %q, want external-service", a.Name())
	}
}

func TestNewLogger(t *testing.T) {
	for _, lc := range []config.LogConfig{
		{Level: "debug", Format: "text"},
		{Level: "info", Format: "json"},
		{Level: "unknown", Format: ""},
	} {
		if newLogger(lc) == nil {
			t.Errorf("newLogger(%+v) returned nil", lc)
		}
	}
}
