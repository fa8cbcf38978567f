// Package telemetry exposes scheduler outcomes as Prometheus metrics.
package telemetry

import (
	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "autochat"

// Metrics implements application.Observer.
type Metrics struct {
	MessagesSent    *prometheus.CounterVec
	RepliesSent     *prometheus.CounterVec
	FallbackReplies prometheus.Counter
	Failures        *prometheus.CounterVec
	Cycles          prometheus.Counter
}

// NewMetrics registers the collectors with reg. Use a fresh registry per
// process; registering twice panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		MessagesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Original messages posted, by channel.",
		}, []string{"channel"}),
		RepliesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_sent_total",
			Help:      "Replies posted, by channel.",
		}, []string{"channel"}),
		FallbackReplies: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_replies_total",
			Help:      "Replies that used a canned text instead of an AI completion.",
		}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Absorbed failures, by error kind.",
		}, []string{"kind"}),
		Cycles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Completed scheduler cycles.",
		}),
	}

	// Pre-create every kind so dashboards see zeros.
	for _, kind := range []domain.Kind{domain.KindAPI, domain.KindConfig, domain.KindAuth, domain.KindAI} {
		m.Failures.WithLabelValues(kind.String())
	}

	return m
}

func (m *Metrics) MessageSent(channel domain.ChannelID) {
	m.MessagesSent.WithLabelValues(string(channel)).Inc()
}

func (m *Metrics) ReplySent(channel domain.ChannelID, fallback bool) {
	m.RepliesSent.WithLabelValues(string(channel)).Inc()
	if fallback {
		m.FallbackReplies.Inc()
	}
}

func (m *Metrics) Failure(kind domain.Kind) {
	m.Failures.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) CycleCompleted() {
	m.Cycles.Inc()
}
