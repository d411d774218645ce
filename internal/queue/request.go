package queue

// Request は遅延実行される1単位の仕事を表す
// Action は Payload を引数に1回だけ呼び出される
type Request struct {
	Action  func(payload any)
	Payload any
}
