package llm

import (
	"context"

	"scam-analyze-service/models"
)

// Client abstracts the generative model provider behind the analyzer.
// Implementations must be concurrency-safe if used across goroutines.
type Client interface {
	// Complete sends one prompt (text plus optional inline image) and returns
	// the raw text completion. The completion carries no structural
	// guarantees; callers must run it through the sanitizer.
	Complete(ctx context.Context, text string, image *models.InlineImage) (string, error)
	// SourceName returns a short provider label for logs (e.g., "Gemini", "ChatGPT").
	SourceName() string
}
