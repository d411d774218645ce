// Package api provides an HTTP status server for the worker pool.
//
// Endpoints:
//   - GET  /api/status  — running flag, worker count, per-worker states, queue length
//   - GET  /api/metrics — task counters and execution timings
//   - POST /api/submit  — enqueue one squaring task ({"value": n})
//   - GET  /ws          — WebSocket stream of pool lifecycle events
package api
