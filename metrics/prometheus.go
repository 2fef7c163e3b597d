package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus.
//
// Metrics are registered lazily on the first observation so that
// constructing a collector which is never used leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	cacheBuild   prometheus.Histogram
	cacheEntries prometheus.Gauge
	worker       *prometheus.HistogramVec
	workerTerms  prometheus.Counter
	compute      *prometheus.HistogramVec
	computations *prometheus.CounterVec
	lastDigits   prometheus.Gauge
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed collector.
//
// Parameters:
//   - reg: Prometheus registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace ("piseries" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "piseries"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.cacheBuild = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "factorial_cache",
			Name:      "build_seconds",
			Help:      "Time spent building the factorial cache.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		})
		p.cacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "factorial_cache",
			Name:      "entries",
			Help:      "Number of factorials in the most recently built cache.",
		})
		p.worker = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "worker",
			Name:      "duration_seconds",
			Help:      "Partial-sum evaluation time per worker by result.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"result"})
		p.workerTerms = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "worker",
			Name:      "terms_total",
			Help:      "Series terms summed by workers.",
		})
		p.compute = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Name:      "compute_duration_seconds",
			Help:      "End-to-end computation time by result.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"result"})
		p.computations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      "computations_total",
			Help:      "Computations by result (success, failure).",
		}, []string{"result"})
		p.lastDigits = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      "last_requested_digits",
			Help:      "Digits requested by the most recent computation.",
		})

		p.reg.MustRegister(p.cacheBuild)
		p.reg.MustRegister(p.cacheEntries)
		p.reg.MustRegister(p.worker)
		p.reg.MustRegister(p.workerTerms)
		p.reg.MustRegister(p.compute)
		p.reg.MustRegister(p.computations)
		p.reg.MustRegister(p.lastDigits)
	})
}

// ObserveCacheBuild records the cache build duration and size.
func (p *PrometheusCollector) ObserveCacheBuild(entries int, seconds float64) {
	p.ensureRegistered()
	p.cacheBuild.Observe(seconds)
	p.cacheEntries.Set(float64(entries))
}

// ObserveWorker records one worker's evaluation.
func (p *PrometheusCollector) ObserveWorker(terms uint64, seconds float64, success bool) {
	p.ensureRegistered()
	p.worker.WithLabelValues(resultLabel(success)).Observe(seconds)
	if success {
		p.workerTerms.Add(float64(terms))
	}
}

// ObserveCompute records a whole computation.
func (p *PrometheusCollector) ObserveCompute(digits uint64, seconds float64, success bool) {
	p.ensureRegistered()
	label := resultLabel(success)
	p.compute.WithLabelValues(label).Observe(seconds)
	p.computations.WithLabelValues(label).Inc()
	p.lastDigits.Set(float64(digits))
}
