package leads

import (
	"time"

	"github.com/google/uuid"
)

// StatusQualified is the only status a lead carries at creation time; the
// downstream CRM owns any later transitions.
const StatusQualified = "Qualified"

// Lead is the record handed to the sink once a session qualifies.
type Lead struct {
	ID          string    `json:"id" dynamodbav:"id"`
	SessionID   string    `json:"session_id" dynamodbav:"session_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Email       string    `json:"email" dynamodbav:"email"`
	Phone       string    `json:"phone" dynamodbav:"phone"`
	Transcript  string    `json:"transcript" dynamodbav:"transcript"`
	ServiceType string    `json:"service_type" dynamodbav:"service_type"`
	Urgency     string    `json:"urgency" dynamodbav:"urgency"`
	Status      string    `json:"status" dynamodbav:"status"`
	Timestamp   time.Time `json:"timestamp" dynamodbav:"timestamp"`
}

// Params collects the fields the workflow knows when a session qualifies.
type Params struct {
	SessionID   string
	Name        string
	Email       string
	Phone       string
	Transcript  string
	ServiceType string
	Urgency     string
	Timestamp   time.Time
}

// New builds a Lead with a fresh id and the Qualified status.
func New(p Params) *Lead {
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &Lead{
		ID:          uuid.New().String(),
		SessionID:   p.SessionID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Transcript:  p.Transcript,
		ServiceType: p.ServiceType,
		Urgency:     p.Urgency,
		Status:      StatusQualified,
		Timestamp:   ts,
	}
}
