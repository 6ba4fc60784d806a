package ai

import "context"

// Embedder interface for embedding model implementations
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
