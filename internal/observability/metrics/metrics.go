package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the qualification flow.
type ChatMetrics struct {
	turnsTotal     *prometheus.CounterVec
	llmLatency     *prometheus.HistogramVec
	leadSavesTotal *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hvac",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Total completed chat turns",
		}, []string{"qualified"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hvac",
			Subsystem: "chat",
			Name:      "llm_latency_seconds",
			Help:      "Latency of structured LLM calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		leadSavesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hvac",
			Subsystem: "chat",
			Name:      "lead_saves_total",
			Help:      "Total lead sink handoffs",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.llmLatency, m.leadSavesTotal)
	return m
}

func (m *ChatMetrics) ObserveTurn(qualified bool) {
	if m == nil {
		return
	}
	label := "false"
	if qualified {
		label = "true"
	}
	m.turnsTotal.WithLabelValues(label).Inc()
}

func (m *ChatMetrics) ObserveLLMLatency(status string, seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.WithLabelValues(status).Observe(seconds)
}

func (m *ChatMetrics) ObserveLeadSave(status string) {
	if m == nil {
		return
	}
	m.leadSavesTotal.WithLabelValues(status).Inc()
}
