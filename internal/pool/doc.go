// Package pool provides a fixed-size worker pool over a shared FIFO
// request queue.
//
// Each worker runs a small state machine: Idle (blocked in Take) →
// Executing (running a dequeued request) → back to Idle, until the queue is
// drained and shutdown has been requested, at which point it reaches
// Terminated. A request that has been dequeued always runs to completion,
// even if shutdown arrives mid-execution, so accepted work is never lost.
//
// # Basic Usage
//
//	p := pool.New(3)
//	p.Start()
//
//	p.Submit(func(payload any) {
//	    v := payload.(*int64)
//	    *v = *v * *v
//	}, &value)
//
//	p.Stop() // drains the queue, joins every worker
//
// # Shutdown
//
// Stop requests shutdown, broadcasts to every blocked worker, and does not
// return until all workers have terminated. Submit returns false once
// shutdown has been requested; a Submit that returned true is guaranteed to
// execute. Calling Stop a second time is a no-op.
//
// # Errors
//
// The pool does not retry and does not report action failures back to the
// submitter. A panicking action is recovered, counted in the metrics, and
// the worker moves on.
package pool
