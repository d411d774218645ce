package queue

import (
	"sync"
	"testing"
)

func TestSignalInitiallyClear(t *testing.T) {
	s := NewSignal()
	if s.Requested() {
		t.Error("expected new signal to be clear")
	}
}

func TestSignalMonotonic(t *testing.T) {
	s := NewSignal()

	s.Request()
	if !s.Requested() {
		t.Error("expected signal to be set after Request")
	}

	// Requesting again must not reset it
	s.Request()
	if !s.Requested() {
		t.Error("expected signal to stay set")
	}
}

func TestSignalConcurrentAccess(t *testing.T) {
	s := NewSignal()

	var wg sync.WaitGroup
	for j := 0; j < 10; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Request()
			_ = s.Requested()
		}()
	}
	wg.Wait()

	if !s.Requested() {
		t.Error("expected signal to be set")
	}
}
