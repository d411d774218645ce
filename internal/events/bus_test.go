package events

import (
	"testing"
	"time"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("expected non-nil bus")
	}
	if bus.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", bus.SubscriberCount())
	}
}

func TestBusSubscribeUnsubscribe(t *testing.T) {
	bus := NewBus()

	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	if bus.SubscriberCount() != 2 {
		t.Errorf("expected 2 subscribers, got %d", bus.SubscriberCount())
	}

	bus.Unsubscribe(ch1)
	if bus.SubscriberCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", bus.SubscriberCount())
	}

	bus.Unsubscribe(ch2)
	if bus.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", bus.SubscriberCount())
	}
}

func TestBusPublish(t *testing.T) {
	bus := NewBus()

	ch := bus.Subscribe()

	event := NewTaskExecutedEvent("worker-1", 5*time.Millisecond)
	bus.Publish(event)

	select {
	case received := <-ch:
		if received.Type != EventTaskExecuted {
			t.Errorf("expected type %s, got %s", EventTaskExecuted, received.Type)
		}
		if received.WorkerID != "worker-1" {
			t.Errorf("expected worker-1, got %s", received.WorkerID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for event")
	}
}

func TestBusPublishMultipleSubscribers(t *testing.T) {
	bus := NewBus()

	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()

	event := NewPoolStartedEvent(3)
	bus.Publish(event)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case received := <-ch:
			if received.Type != EventPoolStarted {
				t.Errorf("subscriber %d: expected type %s, got %s", i, EventPoolStarted, received.Type)
			}
			if received.Data.Workers != 3 {
				t.Errorf("subscriber %d: expected 3 workers, got %d", i, received.Data.Workers)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("subscriber %d: timeout waiting for event", i)
		}
	}
}

func TestBusPublishFullBufferDrops(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()

	// Fill the buffer past capacity; Publish must never block
	done := make(chan struct{})
	go func() {
		for j := 0; j < defaultBufferSize+10; j++ {
			bus.Publish(NewWorkerTerminatedEvent("worker-1"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}

	if len(ch) != defaultBufferSize {
		t.Errorf("expected %d buffered events, got %d", defaultBufferSize, len(ch))
	}
}

func TestBusClose(t *testing.T) {
	bus := NewBus()

	ch := bus.Subscribe()
	bus.Close()

	if bus.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after close, got %d", bus.SubscriberCount())
	}

	select {
	case _, open := <-ch:
		if open {
			t.Error("expected subscriber channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout reading from closed channel")
	}
}
