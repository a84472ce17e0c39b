package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xbnstudios/furcast-nsfw-bot/core/buildinfo"
)

var (
	once sync.Once

	updatesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "updates_received_total",
			Help: "Inbound Telegram updates accepted for processing.",
		},
	)

	handlerResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handler_results_total",
			Help: "Handler invocations by handler name and outcome.",
		},
		[]string{"handler", "outcome"},
	)

	crossposts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossposts_total",
			Help: "Cross-posting attempts by outcome (ok/forward_failed/announce_failed).",
		},
		[]string{"outcome"},
	)

	sendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "send_failures_total",
			Help: "Outbound Telegram calls that failed after retries.",
		},
	)

	conversationTimeouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "conversation_timeouts_total",
			Help: "Submission conversations expired by the inactivity deadline.",
		},
	)

	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build metadata; value is always 1.",
		},
		[]string{"version", "commit"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			updatesReceived, handlerResults, crossposts,
			sendFailures, conversationTimeouts, buildInfo,
		)
		buildInfo.WithLabelValues(buildinfo.Marker(), buildinfo.Commit).Set(1)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// IncUpdate counts one accepted inbound update.
func IncUpdate() { updatesReceived.Inc() }

// HandlerResult counts a finished handler invocation.
func HandlerResult(handler, outcome string) {
	handlerResults.WithLabelValues(norm(handler), norm(outcome)).Inc()
}

// IncCrossPost counts one cross-posting attempt.
func IncCrossPost(outcome string) {
	crossposts.WithLabelValues(norm(outcome)).Inc()
}

// IncSendFailure counts one exhausted outbound send.
func IncSendFailure() { sendFailures.Inc() }

// IncConversationTimeout counts one expired submission conversation.
func IncConversationTimeout() { conversationTimeouts.Inc() }
