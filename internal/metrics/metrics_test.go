package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := New()

	m.RecordSubmit()
	m.RecordSubmit()
	m.RecordExecution(10 * time.Millisecond)
	m.RecordReject()

	if m.Submitted() != 2 {
		t.Errorf("expected 2 submitted, got %d", m.Submitted())
	}
	if m.Executed() != 1 {
		t.Errorf("expected 1 executed, got %d", m.Executed())
	}
	if m.Rejected() != 1 {
		t.Errorf("expected 1 rejected, got %d", m.Rejected())
	}
	if m.Pending() != 1 {
		t.Errorf("expected 1 pending, got %d", m.Pending())
	}
}

func TestMetricsFailureCountsAsExecuted(t *testing.T) {
	m := New()

	m.RecordSubmit()
	m.RecordFailure(time.Millisecond)

	if m.Failed() != 1 {
		t.Errorf("expected 1 failed, got %d", m.Failed())
	}
	if m.Executed() != 1 {
		t.Errorf("expected failure to count as executed, got %d", m.Executed())
	}
	if m.Pending() != 0 {
		t.Errorf("expected 0 pending, got %d", m.Pending())
	}
}

func TestMetricsAverageExecution(t *testing.T) {
	m := New()

	if m.AverageExecution() != 0 {
		t.Error("expected zero average with no executions")
	}

	m.RecordExecution(10 * time.Millisecond)
	m.RecordExecution(20 * time.Millisecond)

	avg := m.AverageExecution()
	if avg != 15*time.Millisecond {
		t.Errorf("expected average 15ms, got %v", avg)
	}
}

func TestMetricsP99Execution(t *testing.T) {
	m := New()

	if m.P99Execution() != 0 {
		t.Error("expected zero P99 with no samples")
	}

	for i := 1; i <= 100; i++ {
		m.RecordExecution(time.Duration(i) * time.Millisecond)
	}

	p99 := m.P99Execution()
	if p99 < 99*time.Millisecond {
		t.Errorf("expected P99 >= 99ms, got %v", p99)
	}
}

func TestMetricsConcurrentRecording(t *testing.T) {
	m := New()

	var wg sync.WaitGroup
	for j := 0; j < 10; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				m.RecordSubmit()
				m.RecordExecution(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if m.Submitted() != 1000 {
		t.Errorf("expected 1000 submitted, got %d", m.Submitted())
	}
	if m.Executed() != 1000 {
		t.Errorf("expected 1000 executed, got %d", m.Executed())
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := New()

	m.RecordSubmit()
	m.RecordExecution(5 * time.Millisecond)

	snap := m.Snapshot()
	if snap.Submitted != 1 {
		t.Errorf("expected 1 submitted in snapshot, got %d", snap.Submitted)
	}
	if snap.Executed != 1 {
		t.Errorf("expected 1 executed in snapshot, got %d", snap.Executed)
	}
	if snap.Elapsed <= 0 {
		t.Error("expected positive elapsed time")
	}
}
