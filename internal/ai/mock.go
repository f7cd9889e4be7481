package ai

import "context"

// MockProvider is a test double implementing Provider.
type MockProvider struct {
	Response    CompletionResponse
	Err         error
	HealthErr   error
	LastRequest CompletionRequest
	Calls       int
}

func (m *MockProvider) Complete(_ context.Context, req CompletionRequest) (CompletionResponse, error) {
	m.LastRequest = req
	m.Calls++
	if m.Err != nil {
		return CompletionResponse{}, m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) Models() []ModelInfo {
	return []ModelInfo{{ID: "mock-model", Name: "Mock Model", MaxTokens: 4096}}
}

func (m *MockProvider) HealthCheck(context.Context) error {
	return m.HealthErr
}
