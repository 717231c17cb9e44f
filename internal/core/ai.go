package core

import (
	"context"

	"github.com/THE-DEEPDAS/Anveshak-sub000/internal/core/parse_engine"
)

// EmbeddingProvider embeds texts for company/faculty matching.
type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// FallbackExtractor is the documented contract for the alternate,
// LLM-based extraction path. The layout pipeline is always tried first;
// the fallback runs only when stage one fails (empty or implausibly
// short document), and its output must satisfy the same external shape.
type FallbackExtractor interface {
	ExtractResume(ctx context.Context, rawText string) (*parse_engine.FormattedResume, error)
}
