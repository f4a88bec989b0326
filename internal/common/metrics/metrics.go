// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RosterMetrics tracks roster changes per activity.
type RosterMetrics struct {
	Signups         *prometheus.CounterVec
	Unregistrations *prometheus.CounterVec
	Rejections      *prometheus.CounterVec
	Participants    *prometheus.GaugeVec
	Capacity        *prometheus.GaugeVec
}

// NewRosterMetrics registers the roster collectors on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewRosterMetrics(reg prometheus.Registerer) *RosterMetrics {
	factory := promauto.With(reg)

	return &RosterMetrics{
		Signups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activity_signups_total",
				Help: "Total number of successful activity signups",
			},
			[]string{"activity"},
		),
		Unregistrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activity_unregistrations_total",
				Help: "Total number of participants removed from activities",
			},
			[]string{"activity"},
		),
		Rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activity_operations_rejected_total",
				Help: "Total number of rejected roster operations",
			},
			[]string{"operation", "error_code"},
		),
		Participants: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "activity_participants",
				Help: "Current number of participants per activity",
			},
			[]string{"activity"},
		),
		Capacity: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "activity_max_participants",
				Help: "Configured capacity per activity",
			},
			[]string{"activity"},
		),
	}
}

func (m *RosterMetrics) RecordSignup(activity string, participants int) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(activity).Inc()
	m.Participants.WithLabelValues(activity).Set(float64(participants))
}

func (m *RosterMetrics) RecordUnregister(activity string, participants int) {
	if m == nil {
		return
	}
	m.Unregistrations.WithLabelValues(activity).Inc()
	m.Participants.WithLabelValues(activity).Set(float64(participants))
}

func (m *RosterMetrics) RecordRejection(operation, errorCode string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(operation, errorCode).Inc()
}

// Seed publishes the initial roster size and capacity of an activity.
func (m *RosterMetrics) Seed(activity string, participants, capacity int) {
	if m == nil {
		return
	}
	m.Participants.WithLabelValues(activity).Set(float64(participants))
	m.Capacity.WithLabelValues(activity).Set(float64(capacity))
}
