package chromemdb

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
)

// VectorDBManager encapsulates the chromem-go database operations for a
// single in-memory collection.
type VectorDBManager struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewVectorDBManager creates an in-memory database holding one collection.
// embed is used only when a document or query arrives without an embedding.
func NewVectorDBManager(collectionName string, embed chromem.EmbeddingFunc) (*VectorDBManager, error) {
	db := chromem.NewDB()
	c, err := db.CreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return &VectorDBManager{db: db, collection: c}, nil
}

// add multiple documents
func (m *VectorDBManager) CreateDocs(ctx context.Context, documents []chromem.Document) error {
	if len(documents) == 0 {
		return nil
	}
	err := m.collection.AddDocuments(ctx, documents, runtime.NumCPU())
	if err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	log.Debug().
		Str("collection", m.collection.Name).
		Int("documents", len(documents)).
		Msg("Added documents to vector database")
	return nil
}

// SearchWithQueryOptions performs a similarity search. Results come back in
// descending similarity order.
func (m *VectorDBManager) SearchWithQueryOptions(ctx context.Context, opts chromem.QueryOptions) ([]chromem.Result, error) {
	if opts.QueryText == "" && opts.QueryEmbedding == nil {
		return nil, fmt.Errorf("either query or embedding must be provided")
	}
	if opts.NResults <= 0 {
		return nil, nil
	}
	// chromem rejects nResults larger than the collection
	if count := m.collection.Count(); opts.NResults > count {
		opts.NResults = count
	}
	if opts.NResults == 0 {
		return nil, nil
	}

	results, err := m.collection.QueryWithOptions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}
	return results, nil
}

func (m *VectorDBManager) Count() int {
	return m.collection.Count()
}
