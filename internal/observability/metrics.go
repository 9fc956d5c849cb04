package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the combat core counters. It satisfies unit.Recorder and
// world.TickRecorder.
type Metrics struct {
	AurasApplied    *prometheus.CounterVec
	AurasRemoved    *prometheus.CounterVec
	DamageDone      prometheus.Counter
	HealingDone     prometheus.Counter
	Deaths          prometheus.Counter
	Invariants      *prometheus.CounterVec
	ReplicationLost prometheus.Counter
	TickDuration    prometheus.Histogram
	Units           prometheus.Gauge
}

// NewMetrics creates and registers the metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AurasApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auracore_auras_applied_total",
			Help: "Aura applications by aura id",
		}, []string{"aura"}),
		AurasRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auracore_auras_removed_total",
			Help: "Aura application removals by remove mode",
		}, []string{"mode"}),
		DamageDone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auracore_damage_total",
			Help: "Health removed by damage",
		}),
		HealingDone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auracore_healing_total",
			Help: "Health restored by heals",
		}),
		Deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auracore_deaths_total",
			Help: "Units killed",
		}),
		Invariants: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auracore_invariant_violations_total",
			Help: "Bookkeeping invariant violations by code",
		}, []string{"code"}),
		ReplicationLost: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auracore_replication_rejected_total",
			Help: "Deltas rejected by observers",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "auracore_tick_duration_seconds",
			Help:    "Shard tick duration",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		Units: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "auracore_units",
			Help: "Units attached to the shard",
		}),
	}

	reg.MustRegister(
		m.AurasApplied,
		m.AurasRemoved,
		m.DamageDone,
		m.HealingDone,
		m.Deaths,
		m.Invariants,
		m.ReplicationLost,
		m.TickDuration,
		m.Units,
	)
	return m
}

func (m *Metrics) AuraApplied(auraID int32) {
	m.AurasApplied.WithLabelValues(strconv.Itoa(int(auraID))).Inc()
}

func (m *Metrics) AuraRemoved(mode string) {
	m.AurasRemoved.WithLabelValues(mode).Inc()
}

func (m *Metrics) Damage(amount int32) {
	if amount > 0 {
		m.DamageDone.Add(float64(amount))
	}
}

func (m *Metrics) Heal(amount int32) {
	if amount > 0 {
		m.HealingDone.Add(float64(amount))
	}
}

func (m *Metrics) Death() {
	m.Deaths.Inc()
}

func (m *Metrics) Invariant(code string) {
	m.Invariants.WithLabelValues(code).Inc()
}

func (m *Metrics) ReplicationRejected() {
	m.ReplicationLost.Inc()
}

func (m *Metrics) Tick(d time.Duration, units int) {
	m.TickDuration.Observe(d.Seconds())
	m.Units.Set(float64(units))
}
