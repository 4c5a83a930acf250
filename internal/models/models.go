package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PageText is the plain text of one PDF page.
type PageText struct {
	Source     string
	PageNumber int
	Text       string
}

// Chunk represents a parsed chunk with metadata
type Chunk struct {
	Content    string `json:"content"`
	Source     string `json:"source"`
	PageNumber int    `json:"page"`
	ChunkID    int    `json:"chunk_id"`
}

// Metadata returns the chunk metadata in the flat form the vector store keeps.
func (c Chunk) Metadata() map[string]string {
	return map[string]string{
		MetadataKeyPage:    strconv.Itoa(c.PageNumber),
		MetadataKeySource:  c.Source,
		MetadataKeyChunkID: strconv.Itoa(c.ChunkID),
	}
}

// ChunkFromMetadata rebuilds a Chunk from stored content and metadata.
func ChunkFromMetadata(content string, metadata map[string]string) (Chunk, error) {
	page, err := strconv.Atoi(metadata[MetadataKeyPage])
	if err != nil {
		return Chunk{}, fmt.Errorf("invalid page metadata %q: %w", metadata[MetadataKeyPage], err)
	}
	chunkID, err := strconv.Atoi(metadata[MetadataKeyChunkID])
	if err != nil {
		return Chunk{}, fmt.Errorf("invalid chunk_id metadata %q: %w", metadata[MetadataKeyChunkID], err)
	}
	return Chunk{
		Content:    content,
		Source:     metadata[MetadataKeySource],
		PageNumber: page,
		ChunkID:    chunkID,
	}, nil
}

type ChunkEmbedding struct {
	Chunk
	Embedding []float32
}

// SearchResult is a retrieved chunk and its cosine similarity to the query.
type SearchResult struct {
	Chunk      `json:"chunk"`
	Similarity float32 `json:"similarity"`
}

type Answer struct {
	Question   string         `json:"question"`
	Text       string         `json:"text"`
	CitedPages []int          `json:"cited_pages"`
	Sources    []SearchResult `json:"sources"`
}

// PageNotice is the line shown under an answer.
func (a *Answer) PageNotice() string {
	if len(a.CitedPages) == 0 {
		return NoPageReferenceNotice
	}
	pages := make([]string, len(a.CitedPages))
	for i, p := range a.CitedPages {
		pages[i] = strconv.Itoa(p)
	}
	return "Answer found on page(s): " + strings.Join(pages, ", ")
}

// CitedPages returns the ascending, de-duplicated page numbers of chunks.
func CitedPages(chunks []Chunk) []int {
	seen := make(map[int]struct{}, len(chunks))
	pages := make([]int, 0, len(chunks))
	for _, c := range chunks {
		if _, ok := seen[c.PageNumber]; ok {
			continue
		}
		seen[c.PageNumber] = struct{}{}
		pages = append(pages, c.PageNumber)
	}
	sort.Ints(pages)
	return pages
}

type ProcessResult struct {
	Documents int           `json:"documents"`
	Pages     int           `json:"pages"`
	Chunks    int           `json:"chunks"`
	Duration  time.Duration `json:"duration"`
}
