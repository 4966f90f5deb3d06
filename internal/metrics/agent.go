package metrics

import "github.com/prometheus/client_golang/prometheus"

// Agent loop Prometheus metrics.
var (
	AgentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semsearch",
			Name:      "agent_runs_total",
			Help:      "Total agent runs by terminal state",
		},
		[]string{"termination"}, // "replied" / "budget_exhausted" / "upstream_failure"
	)

	AgentTurns = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "semsearch",
			Name:      "agent_turns",
			Help:      "Reasoning-service turns consumed per agent run",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	AgentToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semsearch",
			Name:      "agent_tool_calls_total",
			Help:      "Total dispatched tool calls",
		},
		[]string{"tool", "status"}, // status: "ok" / "skipped" / "unknown"
	)

	CompletionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "semsearch",
			Name:      "completion_duration_seconds",
			Help:      "Reasoning-service call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)

var agentMetricsRegistered bool

// RegisterAgentMetrics registers agent metrics. Must be called once from main.
func RegisterAgentMetrics() {
	if agentMetricsRegistered {
		return
	}
	prometheus.MustRegister(AgentRunsTotal)
	prometheus.MustRegister(AgentTurns)
	prometheus.MustRegister(AgentToolCallsTotal)
	prometheus.MustRegister(CompletionDuration)
	agentMetricsRegistered = true
}
