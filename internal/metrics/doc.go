// Package metrics collects task counters and execution timings for the
// worker pool.
//
// Counters use atomics; execution-duration samples (capped at 1000) are kept
// under a mutex for average and P99 calculation. All methods are safe for
// concurrent use.
//
// # Basic Usage
//
//	m := metrics.New()
//	m.RecordSubmit()
//	m.RecordExecution(42 * time.Millisecond)
//
//	snap := m.Snapshot()
//	fmt.Printf("executed=%d avg=%v\n", snap.Executed, snap.AverageExecution)
package metrics
