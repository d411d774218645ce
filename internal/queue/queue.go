package queue

import "sync"

// Queue は無制限のFIFOリクエストキュー
// 単一のミューテックスと条件変数で保護される
// シャットダウンフラグは別ロックの Signal が持つ
type Queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []Request
	quit  *Signal
}

// New は新しいキューを作成する
func New() *Queue {
	q := &Queue{
		quit: NewSignal(),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Submit はリクエストを末尾に追加し、待機中のコンシューマを1つ起こす
// シャットダウン要求後は false を返して受け付けない
// 判定はキューロック下で行うため、true を返したリクエストは必ず実行される
func (q *Queue) Submit(r Request) bool {
	q.mu.Lock()
	if q.quit.Requested() {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, r)
	q.mu.Unlock()

	q.cond.Signal()
	return true
}

// Take は先頭のリクエストを取り出す
// キューが空の間は条件変数で待機し、起床のたびに述語を再評価する
// キューが空かつシャットダウン要求済みのときだけ false を返す
func (q *Queue) Take() (Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.quit.Requested() {
			return Request{}, false
		}
		q.cond.Wait()
	}

	r := q.items[0]
	q.items[0] = Request{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return r, true
}

// Len は現在のキュー長を返す
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Shutdown はシャットダウンを要求し、待機中の全コンシューマを起こす
// 単一の Signal ではなく Broadcast を使う
// 空のキューで待機し続けるコンシューマを全員確実に起こすため
func (q *Queue) Shutdown() {
	q.quit.Request()

	q.mu.Lock()
	q.cond.Broadcast()
	q.mu.Unlock()
}

// ShutdownRequested はシャットダウンが要求済みかを返す
func (q *Queue) ShutdownRequested() bool {
	return q.quit.Requested()
}
