// Package metrics records timing observations of a π computation.
//
// Observations are advisory: the engine never reads them back and a slow or
// failing collector cannot change a computed value.
package metrics

// Collector receives timing observations from the engine.
//
// Implementations must be safe for concurrent use; ObserveWorker is called
// from worker goroutines.
type Collector interface {
	// ObserveCacheBuild records how long the factorial cache took to build.
	//
	// Parameters:
	//   - entries: Number of cached factorials
	//   - seconds: Build duration in seconds
	ObserveCacheBuild(entries int, seconds float64)

	// ObserveWorker records one worker's partial-sum evaluation.
	//
	// Parameters:
	//   - terms: Number of series terms the worker summed
	//   - seconds: Evaluation duration in seconds
	//   - success: false if the worker returned an error or panicked
	ObserveWorker(terms uint64, seconds float64, success bool)

	// ObserveCompute records a whole computation, including cache build
	// and reduction.
	//
	// Parameters:
	//   - digits: Requested decimal digits
	//   - seconds: Total duration in seconds
	//   - success: false if the computation failed
	ObserveCompute(digits uint64, seconds float64, success bool)
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
