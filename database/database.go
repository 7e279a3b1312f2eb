package database

import (
	"context"

	"github.com/nekesuresh/RFP/types"
)

// VectorStore is the similarity-keyed chunk store. Store is called once per
// completed chunk batch with index-aligned, equal-length slices; ids are
// caller-generated and unique. Query returns ranked results validated at
// this boundary.
type VectorStore interface {
	Store(ctx context.Context, texts []string, ids []string, metadatas []types.ChunkMetadata) error
	Query(ctx context.Context, text string, k int) ([]types.RetrievedChunk, error)

	// Collection operations
	ReInit() error
	CreateCollection(ctx context.Context, name string) error
	DeleteCollection(ctx context.Context, name string) error
}
