package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestChatMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)
	m.ObserveTurn(true)
	m.ObserveTurn(false)
	m.ObserveLLMLatency("ok", 0.5)
	m.ObserveLeadSave("error")
}

func TestChatMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)
	m.ObserveLeadSave("ok")
}

func TestChatMetricsNilSafe(t *testing.T) {
	var m *ChatMetrics
	m.ObserveTurn(true)
	m.ObserveLLMLatency("ok", 0.1)
	m.ObserveLeadSave("ok")
}
