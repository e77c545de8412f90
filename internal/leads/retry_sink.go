package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/DebasishDas1/HVAC-Lead/pkg/logging"
)

// RetrySink wraps another sink with bounded exponential backoff. It relies on
// the inner sink being idempotent: retrying after an ambiguous failure must
// not duplicate the lead.
type RetrySink struct {
	inner       Sink
	maxAttempts int
	baseDelay   time.Duration
	logger      *logging.Logger
}

var _ Sink = (*RetrySink)(nil)

// NewRetrySink wraps a sink with retry behavior. maxAttempts below 1 is
// treated as 1; a non-positive baseDelay defaults to 250ms.
func NewRetrySink(inner Sink, maxAttempts int, baseDelay time.Duration, logger *logging.Logger) *RetrySink {
	if inner == nil {
		panic("leads: inner sink cannot be nil")
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 250 * time.Millisecond
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RetrySink{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
	}
}

// Record attempts the inner sink up to maxAttempts times, doubling the delay
// between attempts. Context cancellation aborts the wait.
func (s *RetrySink) Record(ctx context.Context, lead *Lead) error {
	var lastErr error
	delay := s.baseDelay

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		lastErr = s.inner.Record(ctx, lead)
		if lastErr == nil {
			return nil
		}
		if attempt == s.maxAttempts {
			break
		}

		s.logger.Warn("lead sink attempt failed, retrying",
			"attempt", attempt,
			"max_attempts", s.maxAttempts,
			"session_id", lead.SessionID,
			"error", lastErr,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return fmt.Errorf("leads: sink failed after %d attempts: %w", s.maxAttempts, lastErr)
}
