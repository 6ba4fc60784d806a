package ai

import (
	"context"
	"fmt"

	"recruitdesk/internal/config"
	"recruitdesk/internal/errors"
)

// Service handles embedding operations for resume matching
type Service struct {
	Embedder Embedder // Exported for access from server package
	config   *config.EmbeddingConfig
	logger   *errors.Logger
}

// NewService creates a new embedding service instance
func NewService(cfg *config.EmbeddingConfig, logger *errors.Logger) (*Service, error) {
	var embedder Embedder
	var err error

	// Debug logging for service initialization
	logger.Debug("Initializing embedding service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"max_text_chars", cfg.MaxTextChars)

	switch cfg.Provider {
	case "gemini":
		embedder, err = NewGeminiEmbedder(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported embedding provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewInferenceError(errors.ErrCodeInferenceFailed,
			"Failed to create embedding provider", err)
	}

	return &Service{
		Embedder: embedder,
		config:   cfg,
		logger:   logger,
	}, nil
}

// GetModelInfo returns information about the embedding model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Embedder.GetModelInfo(ctx)
}
