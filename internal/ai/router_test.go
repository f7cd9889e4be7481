package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jln-hub/lessongen/internal/ai"
)

func TestRouterCompleteNoProviders(t *testing.T) {
	r := ai.NewRouter(nil)
	_, err := r.Complete(context.Background(), ai.CompletionRequest{})
	if err == nil {
		t.Fatal("Complete() with no providers should fail")
	}
}

func TestRouterCompletePrimary(t *testing.T) {
	r := ai.NewRouter(nil)
	primary := &ai.MockProvider{Response: ai.CompletionResponse{Content: "primary"}}
	backup := &ai.MockProvider{Response: ai.CompletionResponse{Content: "backup"}}
	r.Register("primary", primary)
	r.Register("backup", backup)

	resp, err := r.Complete(context.Background(), ai.CompletionRequest{
		Messages: []ai.Message{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "primary" {
		t.Errorf("Content = %q, want %q", resp.Content, "primary")
	}
	if backup.Calls != 0 {
		t.Errorf("backup provider called %d times, want 0", backup.Calls)
	}
}

func TestRouterCompleteFallback(t *testing.T) {
	r := ai.NewRouter(nil)
	primary := &ai.MockProvider{Err: errors.New("rate limited")}
	backup := &ai.MockProvider{Response: ai.CompletionResponse{Content: "backup"}}
	r.Register("primary", primary)
	r.Register("backup", backup)

	resp, err := r.Complete(context.Background(), ai.CompletionRequest{})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "backup" {
		t.Errorf("Content = %q, want %q", resp.Content, "backup")
	}
	if primary.Calls != 1 {
		t.Errorf("primary provider called %d times, want 1", primary.Calls)
	}
}

func TestRouterCompleteAllFail(t *testing.T) {
	r := ai.NewRouter(nil)
	r.Register("a", &ai.MockProvider{Err: errors.New("down")})
	r.Register("b", &ai.MockProvider{Err: errors.New("also down")})

	_, err := r.Complete(context.Background(), ai.CompletionRequest{})
	if err == nil {
		t.Fatal("Complete() should fail when all providers fail")
	}
}

func TestRouterHasProvider(t *testing.T) {
	r := ai.NewRouter(nil)
	r.Register("openai", &ai.MockProvider{})

	if !r.HasProvider("openai") {
		t.Error("HasProvider(openai) = false, want true")
	}
	if r.HasProvider("anthropic") {
		t.Error("HasProvider(anthropic) = true, want false")
	}
}

func TestRouterRecordsRequest(t *testing.T) {
	r := ai.NewRouter(nil)
	mock := &ai.MockProvider{Response: ai.CompletionResponse{Content: "{}"}}
	r.Register("mock", mock)

	req := ai.CompletionRequest{
		Messages:     []ai.Message{{Role: "user", Content: "analyze"}},
		JSONResponse: true,
	}
	if _, err := r.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !mock.LastRequest.JSONResponse {
		t.Error("LastRequest.JSONResponse = false, want true")
	}
	if len(mock.LastRequest.Messages) != 1 {
		t.Fatalf("LastRequest has %d messages, want 1", len(mock.LastRequest.Messages))
	}
}

func TestRouterHealthCheck(t *testing.T) {
	r := ai.NewRouter(nil)
	r.Register("sick", &ai.MockProvider{HealthErr: errors.New("unreachable")})
	r.Register("healthy", &ai.MockProvider{})

	if err := r.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v, want nil", err)
	}
}

func TestCompletionResponseTotalTokens(t *testing.T) {
	resp := ai.CompletionResponse{InputTokens: 120, OutputTokens: 80}
	if got := resp.TotalTokens(); got != 200 {
		t.Errorf("TotalTokens() = %d, want 200", got)
	}
}
