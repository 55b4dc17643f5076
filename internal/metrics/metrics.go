package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trivia"

// Metrics groups the Prometheus collectors for question generation and room
// creation. A nil *Metrics is valid and records nothing.
type Metrics struct {
	generations  *prometheus.CounterVec
	candidates   *prometheus.CounterVec
	roomCreation *prometheus.CounterVec
	remoteHealth *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_total",
			Help:      "Question generation requests by source and fallback reason.",
		}, []string{"source", "reason"}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Model candidates by validation outcome.",
		}, []string{"outcome"}),
		roomCreation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_creation_total",
			Help:      "Room creation attempts by path and outcome.",
		}, []string{"path", "outcome"}),
		remoteHealth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_health_total",
			Help:      "Remote backend health probes by result.",
		}, []string{"healthy"}),
	}
	reg.MustRegister(m.generations, m.candidates, m.roomCreation, m.remoteHealth)
	return m
}

// ObserveGeneration counts one generation result. reason is empty for a
// fully model-generated result.
func (m *Metrics) ObserveGeneration(source, reason string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(source, reason).Inc()
}

// ObserveCandidates records accepted candidates and rejections keyed by reason.
func (m *Metrics) ObserveCandidates(accepted int, rejected map[string]int) {
	if m == nil {
		return
	}
	m.candidates.WithLabelValues("accepted").Add(float64(accepted))
	for reason, n := range rejected {
		m.candidates.WithLabelValues(reason).Add(float64(n))
	}
}

// ObserveRoomCreation counts a room creation attempt on the remote or local path.
func (m *Metrics) ObserveRoomCreation(path, outcome string) {
	if m == nil {
		return
	}
	m.roomCreation.WithLabelValues(path, outcome).Inc()
}

// ObserveRemoteHealth counts a health probe result.
func (m *Metrics) ObserveRemoteHealth(healthy bool) {
	if m == nil {
		return
	}
	m.remoteHealth.WithLabelValues(strconv.FormatBool(healthy)).Inc()
}
