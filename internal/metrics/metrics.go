package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics はワーカープールのタスクメトリクスを収集する
type Metrics struct {
	submitted   atomic.Uint64
	executed    atomic.Uint64
	rejected    atomic.Uint64
	failed      atomic.Uint64
	totalExecNs atomic.Uint64

	mu            sync.RWMutex
	startTime     time.Time
	durations     []time.Duration
	maxDurSamples int
}

// New は新しいメトリクスを作成する
func New() *Metrics {
	return &Metrics{
		startTime:     time.Now(),
		durations:     make([]time.Duration, 0, 1000),
		maxDurSamples: 1000,
	}
}

// RecordSubmit は受け付けたタスクを記録する
func (m *Metrics) RecordSubmit() {
	m.submitted.Add(1)
}

// RecordReject は拒否されたタスクを記録する
func (m *Metrics) RecordReject() {
	m.rejected.Add(1)
}

// RecordExecution は完了したタスクと実行時間を記録する
func (m *Metrics) RecordExecution(d time.Duration) {
	m.executed.Add(1)
	m.totalExecNs.Add(uint64(d.Nanoseconds()))

	m.mu.Lock()
	if len(m.durations) < m.maxDurSamples {
		m.durations = append(m.durations, d)
	}
	m.mu.Unlock()
}

// RecordFailure はパニックしたタスクを記録する
// 失敗したタスクも実行済みとして数える
func (m *Metrics) RecordFailure(d time.Duration) {
	m.failed.Add(1)
	m.RecordExecution(d)
}

// Submitted は受け付けたタスク数を返す
func (m *Metrics) Submitted() uint64 {
	return m.submitted.Load()
}

// Executed は完了したタスク数を返す
func (m *Metrics) Executed() uint64 {
	return m.executed.Load()
}

// Rejected は拒否されたタスク数を返す
func (m *Metrics) Rejected() uint64 {
	return m.rejected.Load()
}

// Failed はパニックしたタスク数を返す
func (m *Metrics) Failed() uint64 {
	return m.failed.Load()
}

// Pending は受付済みで未完了のタスク数を返す
func (m *Metrics) Pending() uint64 {
	submitted := m.submitted.Load()
	executed := m.executed.Load()
	if executed > submitted {
		return 0
	}
	return submitted - executed
}

// Throughput は開始からの平均タスク処理数/秒を返す
func (m *Metrics) Throughput() float64 {
	elapsed := time.Since(m.startTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(m.executed.Load()) / elapsed
}

// AverageExecution は平均実行時間を返す
func (m *Metrics) AverageExecution() time.Duration {
	executed := m.executed.Load()
	if executed == 0 {
		return 0
	}
	return time.Duration(m.totalExecNs.Load() / executed)
}

// P99Execution はP99実行時間を返す（サンプルベース）
func (m *Metrics) P99Execution() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.durations) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(m.durations))
	copy(sorted, m.durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	idx := int(float64(len(sorted)) * 0.99)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Snapshot はメトリクスのスナップショット
type Snapshot struct {
	Submitted        uint64
	Executed         uint64
	Rejected         uint64
	Failed           uint64
	Pending          uint64
	Throughput       float64
	AverageExecution time.Duration
	P99Execution     time.Duration
	Elapsed          time.Duration
}

// Snapshot は現在のメトリクスのスナップショットを返す
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Submitted:        m.Submitted(),
		Executed:         m.Executed(),
		Rejected:         m.Rejected(),
		Failed:           m.Failed(),
		Pending:          m.Pending(),
		Throughput:       m.Throughput(),
		AverageExecution: m.AverageExecution(),
		P99Execution:     m.P99Execution(),
		Elapsed:          time.Since(m.startTime),
	}
}
