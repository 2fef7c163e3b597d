package metrics

// NopMetrics discards every observation.
type NopMetrics struct{}

var _ Collector = (*NopMetrics)(nil)

// NewNop creates a no-op collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// ObserveCacheBuild discards the cache build observation.
func (n *NopMetrics) ObserveCacheBuild(_ /* entries */ int, _ /* seconds */ float64) {}

// ObserveWorker discards the worker observation.
func (n *NopMetrics) ObserveWorker(_ /* terms */ uint64, _ /* seconds */ float64, _ /* success */ bool) {
}

// ObserveCompute discards the computation observation.
func (n *NopMetrics) ObserveCompute(_ /* digits */ uint64, _ /* seconds */ float64, _ /* success */ bool) {
}
