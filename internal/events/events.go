// Package events provides an event system for worker pool lifecycle
// notifications.
package events

import "time"

// EventType represents the type of event
type EventType string

const (
	// EventPoolStarted is emitted when the pool launches its workers
	EventPoolStarted EventType = "pool_started"
	// EventPoolStopped is emitted after every worker has terminated
	EventPoolStopped EventType = "pool_stopped"
	// EventShutdownRequested is emitted when shutdown is asserted
	EventShutdownRequested EventType = "shutdown_requested"
	// EventTaskExecuted is emitted after a worker finishes a request
	EventTaskExecuted EventType = "task_executed"
	// EventTaskFailed is emitted when a request's action panics
	EventTaskFailed EventType = "task_failed"
	// EventWorkerTerminated is emitted when a worker exits its loop
	EventWorkerTerminated EventType = "worker_terminated"
)

// Event represents a pool lifecycle event
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	WorkerID  string    `json:"worker_id,omitempty"`
	Data      EventData `json:"data,omitempty"`
}

// EventData contains event-specific data
type EventData struct {
	Workers  int    `json:"workers,omitempty"`
	Queued   int    `json:"queued,omitempty"`
	Duration string `json:"duration,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewPoolStartedEvent creates a pool started event
func NewPoolStartedEvent(workers int) Event {
	return Event{
		Type:      EventPoolStarted,
		Timestamp: time.Now(),
		Data: EventData{
			Workers: workers,
		},
	}
}

// NewPoolStoppedEvent creates a pool stopped event
func NewPoolStoppedEvent() Event {
	return Event{
		Type:      EventPoolStopped,
		Timestamp: time.Now(),
	}
}

// NewShutdownRequestedEvent creates a shutdown requested event
func NewShutdownRequestedEvent(queued int) Event {
	return Event{
		Type:      EventShutdownRequested,
		Timestamp: time.Now(),
		Data: EventData{
			Queued: queued,
		},
	}
}

// NewTaskExecutedEvent creates a task executed event
func NewTaskExecutedEvent(workerID string, d time.Duration) Event {
	return Event{
		Type:      EventTaskExecuted,
		Timestamp: time.Now(),
		WorkerID:  workerID,
		Data: EventData{
			Duration: d.String(),
		},
	}
}

// NewTaskFailedEvent creates a task failed event
func NewTaskFailedEvent(workerID string, reason string) Event {
	return Event{
		Type:      EventTaskFailed,
		Timestamp: time.Now(),
		WorkerID:  workerID,
		Data: EventData{
			Error: reason,
		},
	}
}

// NewWorkerTerminatedEvent creates a worker terminated event
func NewWorkerTerminatedEvent(workerID string) Event {
	return Event{
		Type:      EventWorkerTerminated,
		Timestamp: time.Now(),
		WorkerID:  workerID,
	}
}
