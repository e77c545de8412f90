package llm

import "testing"

func TestNormalizeClearsFieldsWhenUnqualified(t *testing.T) {
	d := Decision{
		Response:    "Could you tell me more about the leak?",
		Qualified:   false,
		ServiceType: ServiceRepair,
		Urgency:     UrgencyHigh,
	}
	if err := d.Normalize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ServiceType != "" || d.Urgency != "" {
		t.Fatalf("expected cleared fields on unqualified decision, got %q/%q", d.ServiceType, d.Urgency)
	}
}

func TestNormalizeQualified(t *testing.T) {
	tests := []struct {
		name    string
		in      Decision
		wantErr bool
	}{
		{"valid repair high", Decision{Response: "ok", Qualified: true, ServiceType: "repair", Urgency: "high"}, false},
		{"mixed case trimmed", Decision{Response: "ok", Qualified: true, ServiceType: " Install ", Urgency: "Medium"}, false},
		{"fields may be absent", Decision{Response: "ok", Qualified: true}, false},
		{"unknown service", Decision{Response: "ok", Qualified: true, ServiceType: "duct-cleaning"}, true},
		{"unknown urgency", Decision{Response: "ok", Qualified: true, Urgency: "critical"}, true},
		{"empty response", Decision{Response: "  ", Qualified: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Normalize()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
