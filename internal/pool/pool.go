package pool

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"reqpool/internal/events"
	"reqpool/internal/logger"
	"reqpool/internal/metrics"
	"reqpool/internal/queue"
)

// Config はワーカープールの設定
type Config struct {
	Workers int         // ワーカー数（0でCPU数）
	Bus     *events.Bus // ライフサイクルイベントの配信先（nilで無効）
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		Workers: 0, // CPU数
	}
}

// Pool は固定数のワーカーループを管理する
// リクエストは共有FIFOキュー経由で配られ、
// Stop はキューを空にしてから全ワーカーの終了を待つ
type Pool struct {
	workers int
	queue   *queue.Queue
	metrics *metrics.Metrics
	bus     *events.Bus

	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
	states  []atomic.Int32
}

// New は新しいワーカープールを作成する
// workers が 0 以下の場合は CPU 数を使用
func New(workers int) *Pool {
	config := DefaultConfig()
	config.Workers = workers
	return NewWithConfig(config)
}

// NewWithConfig は設定を指定してワーカープールを作成する
func NewWithConfig(config Config) *Pool {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		workers: workers,
		queue:   queue.New(),
		metrics: metrics.New(),
		bus:     config.Bus,
		states:  make([]atomic.Int32, workers),
	}
}

// Start はワーカーループを起動する（2回目以降は何もしない）
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.publish(events.NewPoolStartedEvent(p.workers))
	logger.Info("", "Pool started with %d workers", p.workers)
}

// worker は個々のワーカーループ
// Idle → Executing → Idle を繰り返し、
// キューが空かつシャットダウン要求済みになったら Terminated で抜ける
func (p *Pool) worker(id int) {
	defer p.wg.Done()
	tag := fmt.Sprintf("worker-%d", id)

	for {
		p.states[id].Store(int32(StateIdle))

		r, ok := p.queue.Take()
		if !ok {
			p.states[id].Store(int32(StateTerminated))
			p.publish(events.NewWorkerTerminatedEvent(tag))
			logger.Debug(tag, "terminated")
			return
		}

		p.states[id].Store(int32(StateExecuting))
		p.run(tag, r)
	}
}

// run は取り出したリクエストをキューロック外で実行する
// アクションのパニックはワーカーを殺さないよう回収し、失敗として数える
func (p *Pool) run(tag string, r queue.Request) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			p.metrics.RecordFailure(time.Since(start))
			p.publish(events.NewTaskFailedEvent(tag, fmt.Sprintf("%v", rec)))
			logger.Warn(tag, "action panicked: %v", rec)
		}
	}()

	r.Action(r.Payload)

	d := time.Since(start)
	p.metrics.RecordExecution(d)
	p.publish(events.NewTaskExecutedEvent(tag, d))
}

// Submit はリクエストをキューに追加する
// 複数のプロデューサから並行して呼び出せる
// シャットダウン要求後と nil アクションには false を返す
func (p *Pool) Submit(action func(payload any), payload any) bool {
	if action == nil {
		p.metrics.RecordReject()
		return false
	}

	if !p.queue.Submit(queue.Request{Action: action, Payload: payload}) {
		p.metrics.RecordReject()
		return false
	}

	p.metrics.RecordSubmit()
	return true
}

// Stop はシャットダウンを要求し、全ワーカーの終了を待つ
// 受付済みのリクエストはすべて実行されてから戻る（2回目以降は何もしない）
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	started := p.started
	p.mu.Unlock()

	p.publish(events.NewShutdownRequestedEvent(p.queue.Len()))
	p.queue.Shutdown()

	if started {
		p.wg.Wait()
	}

	p.publish(events.NewPoolStoppedEvent())
	logger.Info("", "Pool stopped, %d tasks executed", p.metrics.Executed())
}

// publish はバスが設定されていればイベントを配信する
func (p *Pool) publish(e events.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}

// NumWorkers はワーカー数を返す
func (p *Pool) NumWorkers() int {
	return p.workers
}

// QueueLen は現在のキュー長を返す
func (p *Pool) QueueLen() int {
	return p.queue.Len()
}

// WorkerStates は各ワーカーの現在の状態を返す
func (p *Pool) WorkerStates() []State {
	states := make([]State, p.workers)
	for i := range p.states {
		states[i] = State(p.states[i].Load())
	}
	return states
}

// Running は起動済みで停止していないかを返す
func (p *Pool) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && !p.stopped
}

// Metrics はプールのメトリクスを返す
func (p *Pool) Metrics() *metrics.Metrics {
	return p.metrics
}
