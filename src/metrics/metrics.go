package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// End reasons recorded on SessionsEnded.
const (
	ReasonManual    = "manual"
	ReasonEmergency = "emergency"
	ReasonReclaimed = "reclaimed"
)

var (
	// SessionsCreated counts provisioned sessions by kind.
	SessionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "communication_sessions_created_total",
		Help: "Number of communication sessions created, by kind.",
	}, []string{"kind"})

	// SessionsActivated counts sessions that reached the active state.
	SessionsActivated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "communication_sessions_activated_total",
		Help: "Number of communication sessions that became active.",
	})

	// SessionsEnded counts terminal transitions by how they happened.
	SessionsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "communication_sessions_ended_total",
		Help: "Number of communication sessions ended, by reason.",
	}, []string{"reason"})

	// ProvisioningFailures counts room-provider errors during creation.
	ProvisioningFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "communication_room_provisioning_failures_total",
		Help: "Number of failed room provisioning attempts.",
	})

	// RecordingsPurged counts recording metadata rows removed by the
	// retention sweep.
	RecordingsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "communication_recordings_purged_total",
		Help: "Number of expired recording metadata rows purged.",
	})
)
