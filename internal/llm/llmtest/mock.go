// Package llmtest provides an llm.Client stub for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/groepsplan/internal/llm"
)

// MockClient implements llm.Client with overridable funcs and records every prompt it receives.
type MockClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GetModelFunc        func(tier llm.ModelTier) string
	CloseFunc           func() error

	mu      sync.Mutex
	prompts []string
}

// Responses returns a client whose GenerateContent returns the given texts in order,
// repeating the last one once they run out.
func Responses(texts ...string) *MockClient {
	var mu sync.Mutex
	i := 0
	return &MockClient{
		GenerateContentFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			if len(texts) == 0 {
				return "", nil
			}
			text := texts[min(i, len(texts)-1)]
			i++
			return text, nil
		},
	}
}

func (m *MockClient) record(prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
}

// Prompts returns the prompts received so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func (m *MockClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record(prompt)
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record(prompt)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ llm.Client = (*MockClient)(nil)
