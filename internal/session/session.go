// Package session holds the per-user state of the question answering flow:
// at most one index, replaced wholesale by every successful Process.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"pdf-rag/internal/models"
	"pdf-rag/internal/parser"
	"pdf-rag/internal/rag"
)

// Pipeline is the stateless processing and answering engine a Session drives.
type Pipeline interface {
	Process(ctx context.Context, uploads []parser.Upload) (*rag.Index, *models.ProcessResult, error)
	Ask(ctx context.Context, index *rag.Index, question string) (*models.Answer, error)
}

// Info is a snapshot of a session's state.
type Info struct {
	ID        string                `json:"id"`
	Ready     bool                  `json:"ready"`
	Documents []string              `json:"documents"`
	Result    *models.ProcessResult `json:"result,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// Session serialises Process and Ask for one user.
type Session struct {
	id        string
	createdAt time.Time
	pipeline  Pipeline

	mu        sync.Mutex
	index     *rag.Index
	documents []string
	result    *models.ProcessResult
}

func New(id string, pipeline Pipeline) *Session {
	return &Session{id: id, pipeline: pipeline, createdAt: time.Now()}
}

func (s *Session) ID() string {
	return s.id
}

// Process builds a new index from uploads. The previous index survives a
// failed attempt.
func (s *Session) Process(ctx context.Context, uploads []parser.Upload) (*models.ProcessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, result, err := s.pipeline.Process(ctx, uploads)
	if err != nil {
		log.Warn().Err(err).Str("session", s.id).Msg("Processing failed, keeping previous index")
		return nil, err
	}

	names := make([]string, len(uploads))
	for i, u := range uploads {
		names[i] = u.Name
	}
	s.index = index
	s.documents = names
	s.result = result
	return result, nil
}

// Ask answers question against the current index. Without one it returns
// rag.ErrNoIndex and makes no remote call.
func (s *Session) Ask(ctx context.Context, question string) (*models.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return nil, rag.ErrNoIndex
	}
	return s.pipeline.Ask(ctx, s.index, question)
}

func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index != nil
}

func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:        s.id,
		Ready:     s.index != nil,
		Documents: append([]string(nil), s.documents...),
		Result:    s.result,
		CreatedAt: s.createdAt,
	}
}
