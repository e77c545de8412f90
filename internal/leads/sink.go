package leads

import (
	"context"
	"time"

	"github.com/DebasishDas1/HVAC-Lead/pkg/logging"
)

// Sink receives qualified leads. Implementations must be idempotent for the
// same lead dedupe key so a retried handoff never creates duplicates.
type Sink interface {
	Record(ctx context.Context, lead *Lead) error
}

// MockSheetSink stands in for the production CRM integration during local
// development. It simulates the latency of a remote spreadsheet API and logs
// a human-readable summary of the lead.
type MockSheetSink struct {
	logger  *logging.Logger
	latency time.Duration
}

// NewMockSheetSink creates a mock sink. A latency of zero uses the default
// one second delay.
func NewMockSheetSink(logger *logging.Logger, latency time.Duration) *MockSheetSink {
	if logger == nil {
		logger = logging.Default()
	}
	if latency <= 0 {
		latency = time.Second
	}
	return &MockSheetSink{logger: logger, latency: latency}
}

// Record waits out the simulated latency, honoring context cancellation, then
// logs the lead summary.
func (s *MockSheetSink) Record(ctx context.Context, lead *Lead) error {
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	s.logger.Info("lead saved to mock sheet",
		"lead_id", lead.ID,
		"session_id", lead.SessionID,
		"name", lead.Name,
		"email", lead.Email,
		"phone", lead.Phone,
		"service_type", lead.ServiceType,
		"urgency", lead.Urgency,
		"status", lead.Status,
		"timestamp", lead.Timestamp.Format(time.RFC3339),
	)
	return nil
}
