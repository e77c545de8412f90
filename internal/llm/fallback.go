package llm

import (
	"context"

	"github.com/DebasishDas1/HVAC-Lead/pkg/logging"
)

// Fallback wraps a primary structured client with a secondary provider.
// If the primary fails, the same message payload is retried against the
// secondary; if both fail, the last error propagates and no decision is
// fabricated.
type Fallback struct {
	primary   StructuredClient
	secondary StructuredClient
	logger    *logging.Logger
}

// NewFallback creates a fallback-enabled structured client.
// If secondary is nil, only the primary provider is used.
func NewFallback(primary, secondary StructuredClient, logger *logging.Logger) *Fallback {
	if logger == nil {
		logger = logging.Default()
	}
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// GenerateStructured tries the primary provider, then the secondary.
func (f *Fallback) GenerateStructured(ctx context.Context, messages []ChatMessage) (Decision, error) {
	decision, err := f.primary.GenerateStructured(ctx, messages)
	if err == nil {
		return decision, nil
	}

	f.logger.Warn("primary LLM failed, attempting fallback",
		"error", err.Error(),
		"fallback_available", f.secondary != nil,
	)

	if f.secondary == nil {
		return Decision{}, err
	}

	decision, fallbackErr := f.secondary.GenerateStructured(ctx, messages)
	if fallbackErr != nil {
		f.logger.Error("fallback LLM also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return Decision{}, fallbackErr
	}

	f.logger.Info("fallback LLM succeeded after primary failure")
	return decision, nil
}
