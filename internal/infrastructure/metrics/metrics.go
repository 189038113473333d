package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat-API Metrics
var (
	// Turn counters, labelled by delivery mode and outcome.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatarbor",
			Subsystem: "chat_api",
			Name:      "turns_total",
			Help:      "Total number of conversational turns",
		},
		[]string{"mode", "status"},
	)

	// Turn duration histogram
	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatarbor",
			Subsystem: "chat_api",
			Name:      "turn_duration_seconds",
			Help:      "End-to-end turn duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"mode"},
	)

	// Streamed text chunks forwarded to clients
	StreamChunksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatarbor",
			Subsystem: "chat_api",
			Name:      "stream_chunks_total",
			Help:      "Total streamed text chunks forwarded to clients",
		},
	)

	// Tool call counters
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatarbor",
			Subsystem: "chat_api",
			Name:      "tool_calls_total",
			Help:      "Total tool invocations",
		},
		[]string{"tool_name", "status"},
	)

	// Tool duration histogram
	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatarbor",
			Subsystem: "chat_api",
			Name:      "tool_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool_name"},
	)

	// Documents injected as retrieved context per turn
	RetrievedDocuments = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "chatarbor",
			Subsystem: "chat_api",
			Name:      "retrieved_documents",
			Help:      "Knowledge documents selected as context per turn",
			Buckets:   []float64{0, 1, 2, 3},
		},
	)

	// Busy-session rejections
	SessionBusyTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatarbor",
			Subsystem: "chat_api",
			Name:      "session_busy_total",
			Help:      "Turns rejected because the session was already processing",
		},
	)
)
