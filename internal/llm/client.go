package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is an internal message representation that can include system prompts.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service categories a qualified lead can be tagged with.
const (
	ServiceRepair      = "repair"
	ServiceInstall     = "install"
	ServiceMaintenance = "maintenance"
)

// Urgency levels a qualified lead can be tagged with.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Decision is the schema-constrained output of a structured completion.
// The backend guarantees shape; Normalize guarantees field semantics.
type Decision struct {
	Response    string `json:"response"`
	Qualified   bool   `json:"qualified"`
	ServiceType string `json:"service_type,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
}

// Normalize validates the decision and enforces the field invariants: an
// unqualified decision never carries a service type or urgency, and a
// qualified one only carries known enum values. A violation is treated the
// same as an unavailable backend by callers.
func (d *Decision) Normalize() error {
	d.Response = strings.TrimSpace(d.Response)
	if d.Response == "" {
		return fmt.Errorf("llm: decision has empty response text")
	}

	d.ServiceType = strings.ToLower(strings.TrimSpace(d.ServiceType))
	d.Urgency = strings.ToLower(strings.TrimSpace(d.Urgency))

	if !d.Qualified {
		d.ServiceType = ""
		d.Urgency = ""
		return nil
	}

	switch d.ServiceType {
	case "", ServiceRepair, ServiceInstall, ServiceMaintenance:
	default:
		return fmt.Errorf("llm: unknown service type %q", d.ServiceType)
	}
	switch d.Urgency {
	case "", UrgencyLow, UrgencyMedium, UrgencyHigh:
	default:
		return fmt.Errorf("llm: unknown urgency %q", d.Urgency)
	}
	return nil
}

// StructuredClient is the capability every model backend implements:
// send role-tagged messages, receive a decision conforming to the schema.
// Backends are interchangeable and selected via configuration.
type StructuredClient interface {
	GenerateStructured(ctx context.Context, messages []ChatMessage) (Decision, error)
}
