package pool

// State はワーカーの実行状態を表す
type State int32

const (
	// StateIdle はリクエスト待ち（Take でブロック中を含む）
	StateIdle State = iota
	// StateExecuting は取り出したリクエストを実行中
	StateExecuting
	// StateTerminated はループを抜けた終端状態
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateExecuting:
		return "Executing"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
