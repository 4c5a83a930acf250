package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
)

// Keywords are the dimensions of KeywordEmbedder vectors.
var Keywords = []string{"alpha", "beta", "gamma", "delta"}

// KeywordEmbedder embeds text as keyword counts. Text without any keyword
// gets a vector on an extra "other" axis, so no vector is ever zero.
type KeywordEmbedder struct {
	mu         sync.Mutex
	Err        error
	QueryCalls int
	DocCalls   int
	Embedded   int
}

var _ embeddings.Embedder = (*KeywordEmbedder)(nil)

func (e *KeywordEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.DocCalls++
	if e.Err != nil {
		return nil, e.Err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = keywordVector(text)
	}
	e.Embedded += len(texts)
	return vectors, nil
}

func (e *KeywordEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.QueryCalls++
	if e.Err != nil {
		return nil, e.Err
	}
	return keywordVector(text), nil
}

// Calls is the total number of remote-style calls made.
func (e *KeywordEmbedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.QueryCalls + e.DocCalls
}

func keywordVector(text string) []float32 {
	vec := make([]float32, len(Keywords)+1)
	lower := strings.ToLower(text)
	found := false
	for i, kw := range Keywords {
		if n := strings.Count(lower, kw); n > 0 {
			vec[i] = float32(n)
			found = true
		}
	}
	if !found {
		vec[len(Keywords)] = 1
	}
	return vec
}

// FakeModel is a chat model that returns a fixed reply and records every prompt.
type FakeModel struct {
	mu           sync.Mutex
	Reply        string
	Err          error
	Prompts      []string
	Temperatures []float64
}

var _ llms.Model = (*FakeModel)(nil)

func (m *FakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	var prompt strings.Builder
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				prompt.WriteString(text.Text)
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt.String())
	m.Temperatures = append(m.Temperatures, opts.Temperature)
	if m.Err != nil {
		return nil, m.Err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.Reply}},
	}, nil
}

func (m *FakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// Calls is the number of completions requested.
func (m *FakeModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// LastPrompt returns the most recent prompt, or "" if none was sent.
func (m *FakeModel) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
