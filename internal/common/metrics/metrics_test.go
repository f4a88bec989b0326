package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRosterMetrics(t *testing.T) {
	m := NewRosterMetrics(prometheus.NewRegistry())

	m.Seed("Chess Club", 2, 12)
	m.RecordSignup("Chess Club", 3)
	m.RecordSignup("Chess Club", 4)
	m.RecordUnregister("Chess Club", 3)
	m.RecordRejection("signup", "ALREADY_REGISTERED")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Signups.WithLabelValues("Chess Club")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Unregistrations.WithLabelValues("Chess Club")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Participants.WithLabelValues("Chess Club")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.Capacity.WithLabelValues("Chess Club")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("signup", "ALREADY_REGISTERED")))
}

func TestRosterMetrics_NilSafe(t *testing.T) {
	var m *RosterMetrics
	assert.NotPanics(t, func() {
		m.RecordSignup("Chess Club", 1)
		m.RecordUnregister("Chess Club", 0)
		m.RecordRejection("signup", "ACTIVITY_NOT_FOUND")
		m.Seed("Chess Club", 0, 12)
	})
}

func TestNewRosterMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRosterMetrics(reg)
	assert.Panics(t, func() { NewRosterMetrics(reg) })
}
