package queue

import "sync"

// Signal は単調なシャットダウンフラグ
// 一度 true になったら二度と false に戻らない
// キューのロックとは独立したロックで保護される
type Signal struct {
	mu        sync.Mutex
	requested bool
}

// NewSignal は新しいシグナルを作成する
func NewSignal() *Signal {
	return &Signal{}
}

// Request はフラグを立てる（冪等）
func (s *Signal) Request() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested = true
}

// Requested はフラグの現在値を返す
func (s *Signal) Requested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requested
}
