// Package metrics instruments the host: job counts and latencies from the
// dispatcher and the handle count of each worker kernel. Metrics live in a
// private registry so several hosts (and tests) never collide.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const namespace = "seqkernel"

// Job outcomes used as the "status" label.
const (
	StatusOK        = "ok"
	StatusError     = "error"
	StatusPanic     = "panic"
	StatusAbandoned = "abandoned"
)

type Metrics struct {
	Registry *prometheus.Registry

	JobsTotal   *prometheus.CounterVec
	JobDuration *prometheus.HistogramVec
	LiveHandles *prometheus.GaugeVec
	ArenaBytes  *prometheus.GaugeVec
	QueueDepth  prometheus.Gauge
	Records     prometheus.Counter
	Bases       prometheus.Counter
}

// New builds a registry with the host metrics and the Go runtime collector.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		JobsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Kernel jobs handled by the dispatcher, by operation and status.",
		}, []string{"op", "status"}),
		JobDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time of kernel jobs, by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"op"}),
		LiveHandles: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_handles",
			Help:      "Outstanding result handles per worker kernel.",
		}, []string{"worker"}),
		ArenaBytes: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "arena_bytes",
			Help:      "Released k-mer buffer bytes held for reuse per worker kernel.",
		}, []string{"worker"}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Jobs waiting for a worker.",
		}),
		Records: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "FASTA records read.",
		}),
		Bases: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bases_total",
			Help:      "Sequence bases read.",
		}),
	}
}

// WriteText gathers the registry and writes it in the Prometheus text
// exposition format. Only families with the seqkernel prefix are written
// unless all is set.
func (m *Metrics) WriteText(w io.Writer, all bool) error {
	mfs, err := m.Registry.Gather()
	if err != nil {
		return err
	}
	return encode(w, filter(mfs, all))
}

func filter(mfs []*dto.MetricFamily, all bool) []*dto.MetricFamily {
	if all {
		return mfs
	}
	out := mfs[:0]
	for _, mf := range mfs {
		if len(mf.GetName()) > len(namespace) && mf.GetName()[:len(namespace)+1] == namespace+"_" {
			out = append(out, mf)
		}
	}
	return out
}

func encode(w io.Writer, mfs []*dto.MetricFamily) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
