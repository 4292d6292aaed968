package vectorDB

import (
	"context"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
)

type DataProcessor interface {
	Query(ctx context.Context, vectorVal []float32, topK int) ([]esg.RetrievedChunk, error)

	// EnsureCollection is called before any upsert
	EnsureCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []esg.PageChunk, vectors [][]float32) error

	CountPoints(ctx context.Context, collectionName string) (uint64, error)
	Reset(ctx context.Context, collectionName string) error
}
