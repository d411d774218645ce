// Package queue provides an unbounded FIFO request queue with a blocking
// dequeue protocol and a cooperative shutdown handshake.
//
// The queue is guarded by a single mutex with an associated condition
// variable. The shutdown flag lives in a separate Signal guarded by its own
// mutex, so asserting shutdown never contends with enqueue/dequeue traffic
// beyond the final broadcast.
//
// # Basic Usage
//
//	q := queue.New()
//
//	// Producer side
//	q.Submit(queue.Request{Action: fn, Payload: data})
//
//	// Consumer side
//	for {
//	    r, ok := q.Take()
//	    if !ok {
//	        return // queue drained and shutdown requested
//	    }
//	    r.Action(r.Payload)
//	}
//
//	// Shutdown
//	q.Shutdown() // wakes every blocked consumer
//
// # Guarantees
//
// Submit never blocks and preserves FIFO order. Take returns false only when
// the queue is empty and shutdown has been requested; a spurious or
// shutdown-only wake never yields a zero Request with ok == true. A Submit
// that returned true is always observed by a consumer before the pool can
// drain, because the shutdown check on the enqueue path happens under the
// queue lock.
package queue
