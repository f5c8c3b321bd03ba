// internal/metrics/metrics.go
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/sleep-recorder/internal/status"
)

const namespace = "sleeprecorder"

// Run collects the metrics of one recording run on a private registry.
// Nothing is served; the registry is written once as a node-exporter
// textfile when the run ends.
type Run struct {
	reg *prometheus.Registry

	reads        *prometheus.CounterVec
	failures     *prometheus.CounterVec
	onsets       *prometheus.CounterVec
	pings        prometheus.Counter
	pingFailures prometheus.Counter
	ticks        prometheus.Counter

	health       *prometheus.GaugeVec
	motion       prometheus.Gauge
	busiestCount prometheus.Gauge
	duration     prometheus.Gauge
}

func New() *Run {
	r := &Run{
		reg: prometheus.NewRegistry(),
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sensor_reads_total",
			Help:      "Sensor reads attempted.",
		}, []string{"channel"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sensor_failures_total",
			Help:      "Sensor reads that produced a sentinel.",
		}, []string{"channel"}),
		onsets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sound_onsets_total",
			Help:      "Sound onsets recorded.",
		}, []string{"sensor"}),
		pings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchdog_pings_total",
			Help:      "Watchdog keepalives sent.",
		}),
		pingFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watchdog_ping_failures_total",
			Help:      "Watchdog keepalives that failed.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distance_ticks_total",
			Help:      "Distance sampling ticks.",
		}),
		health: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sensor_health",
			Help:      "Sensor health at end of run (0 unknown, 1 ok, 2 error).",
		}, []string{"channel"}),
		motion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "motion_entries",
			Help:      "Movements found by the last analysis.",
		}),
		busiestCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "busiest_minute_onsets",
			Help:      "Onset count of the busiest minute in the last analysis.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time spent sampling.",
		}),
	}

	r.reg.MustRegister(
		r.reads, r.failures, r.onsets,
		r.pings, r.pingFailures, r.ticks,
		r.health, r.motion, r.busiestCount, r.duration,
	)
	return r
}

// ---- sampler observer ----

func (r *Run) ObserveRead(c status.Channel, err error) {
	r.reads.WithLabelValues(c.String()).Inc()
	if err != nil {
		r.failures.WithLabelValues(c.String()).Inc()
	}
}

func (r *Run) ObserveOnset(sensor int) {
	r.onsets.WithLabelValues(strconv.Itoa(sensor)).Inc()
}

func (r *Run) ObservePing(err error) {
	r.pings.Inc()
	if err != nil {
		r.pingFailures.Inc()
	}
}

func (r *Run) ObserveTick() {
	r.ticks.Inc()
}

// ---- end of run ----

// SetHealth publishes the final per-channel health.
func (r *Run) SetHealth(snaps []status.Snapshot) {
	for _, s := range snaps {
		r.health.WithLabelValues(s.Channel.String()).Set(float64(s.Health))
	}
}

// SetAnalysis publishes the headline numbers of the report.
func (r *Run) SetAnalysis(motionEntries, busiestMinuteOnsets int) {
	r.motion.Set(float64(motionEntries))
	r.busiestCount.Set(float64(busiestMinuteOnsets))
}

func (r *Run) SetDuration(seconds float64) {
	r.duration.Set(seconds)
}

// WriteTextfile atomically writes the registry in text exposition format.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
