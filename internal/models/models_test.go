package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCitedPages(t *testing.T) {
	chunks := []Chunk{
		{PageNumber: 3},
		{PageNumber: 1},
		{PageNumber: 3},
		{PageNumber: 2},
	}
	assert.Equal(t, []int{1, 2, 3}, CitedPages(chunks))
	assert.Empty(t, CitedPages(nil))
}

func TestAnswer_PageNotice(t *testing.T) {
	a := &Answer{CitedPages: []int{2, 7}}
	assert.Equal(t, "Answer found on page(s): 2, 7", a.PageNotice())

	empty := &Answer{}
	assert.Equal(t, NoPageReferenceNotice, empty.PageNotice())
}

// TestChunkMetadata verifies chunk metadata survives the flat string map used by the vector store.
func TestChunkMetadata(t *testing.T) {
	c := Chunk{Content: "hello", Source: "report.pdf", PageNumber: 4, ChunkID: 2}

	got, err := ChunkFromMetadata(c.Content, c.Metadata())
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = ChunkFromMetadata("x", map[string]string{MetadataKeyPage: "four", MetadataKeyChunkID: "1"})
	assert.Error(t, err)
}
