package parser

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"pdf-rag/internal/config"
	"pdf-rag/internal/models"
)

// NewSplitter builds the text splitter selected by cfg.ChunkStrategy.
func NewSplitter(cfg config.RAGConfig) (textsplitter.TextSplitter, error) {
	switch cfg.ChunkStrategy {
	case config.StrategyRecursive, "":
		return textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
		), nil
	case config.StrategyWindow:
		return WindowSplitter{MaxChars: cfg.ChunkSize, OverlapChars: cfg.ChunkOverlap}, nil
	default:
		return nil, fmt.Errorf("unknown chunk strategy: %s", cfg.ChunkStrategy)
	}
}

// GetChunks splits every page into chunks. Chunk IDs start at 1 within a page.
func GetChunks(pages []models.PageText, splitter textsplitter.TextSplitter) ([]models.Chunk, error) {
	var chunks []models.Chunk
	for _, page := range pages {
		texts, err := splitter.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to split %s page %d: %w", page.Source, page.PageNumber, err)
		}
		id := 0
		for _, text := range texts {
			if strings.TrimSpace(text) == "" {
				continue
			}
			id++
			chunks = append(chunks, models.Chunk{
				Content:    text,
				Source:     page.Source,
				PageNumber: page.PageNumber,
				ChunkID:    id,
			})
		}
	}
	return chunks, nil
}

// WindowSplitter cuts text into windows of at most MaxChars runes. Each
// window starts OverlapChars runes before the end of the previous one.
type WindowSplitter struct {
	MaxChars     int
	OverlapChars int
}

func (w WindowSplitter) SplitText(text string) ([]string, error) {
	return chunkContent(text, w.MaxChars, w.OverlapChars), nil
}

// chunk content into chunks with maxChars and overlapChars
func chunkContent(content string, maxChars, overlapChars int) []string {
	if maxChars <= 0 {
		return nil
	}
	if overlapChars < 0 {
		overlapChars = 0
	}
	if overlapChars >= maxChars {
		overlapChars = maxChars / 2
	}

	runes := []rune(strings.TrimSpace(content))
	contentLen := len(runes)
	if contentLen == 0 {
		return nil
	}
	if contentLen <= maxChars {
		return []string{string(runes)}
	}

	var chunks []string
	start := 0
	for start < contentLen {
		end := min(start+maxChars, contentLen)

		// Look for a space or punctuation within the last 10% of the chunk
		if end < contentLen {
			lookBack := min(maxChars/10, end-start)
			for i := end - 1; i >= end-lookBack && i > start; i-- {
				if runes[i] == ' ' || runes[i] == '\n' || runes[i] == '.' {
					end = i + 1
					break
				}
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= contentLen {
			break
		}
		// overlap is measured back from the emitted end
		start = max(end-overlapChars, start+1)
	}

	return chunks
}
