package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"reqpool/internal/events"
	"reqpool/internal/logger"
	"reqpool/internal/pool"

	"golang.org/x/net/websocket"
)

// Server はプールの状態を公開するAPIサーバー
type Server struct {
	addr string
	pool *pool.Pool
	bus  *events.Bus

	mu        sync.RWMutex
	wsClients map[*websocket.Conn]bool

	server *http.Server
}

// NewServer は新しいAPIサーバーを作成する
func NewServer(addr string, p *pool.Pool, bus *events.Bus) *Server {
	return &Server{
		addr:      addr,
		pool:      p,
		bus:       bus,
		wsClients: make(map[*websocket.Conn]bool),
	}
}

// Start はサーバーを開始する
// ctx のキャンセルで graceful shutdown する
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/metrics", s.handleMetrics)
	mux.HandleFunc("/api/submit", s.handleSubmit)

	// WebSocket
	mux.Handle("/ws", websocket.Handler(s.handleWebSocket))

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	// バックグラウンドでイベント配信
	go s.eventLoop(ctx)

	logger.Info("", "API server starting on http://%s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// StatusResponse はステータスレスポンス
type StatusResponse struct {
	Running      bool     `json:"running"`
	Workers      int      `json:"workers"`
	QueueLength  int      `json:"queue_length"`
	WorkerStates []string `json:"worker_states"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	states := s.pool.WorkerStates()
	names := make([]string, len(states))
	for i, st := range states {
		names[i] = st.String()
	}

	s.writeJSON(w, StatusResponse{
		Running:      s.pool.Running(),
		Workers:      s.pool.NumWorkers(),
		QueueLength:  s.pool.QueueLen(),
		WorkerStates: names,
	})
}

// MetricsResponse はメトリクスレスポンス
type MetricsResponse struct {
	Submitted    uint64  `json:"submitted"`
	Executed     uint64  `json:"executed"`
	Rejected     uint64  `json:"rejected"`
	Failed       uint64  `json:"failed"`
	Pending      uint64  `json:"pending"`
	Throughput   float64 `json:"throughput"`
	AvgExecMs    float64 `json:"avg_exec_ms"`
	P99ExecMs    float64 `json:"p99_exec_ms"`
	ElapsedSecs  float64 `json:"elapsed_secs"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.pool.Metrics().Snapshot()
	s.writeJSON(w, MetricsResponse{
		Submitted:   snap.Submitted,
		Executed:    snap.Executed,
		Rejected:    snap.Rejected,
		Failed:      snap.Failed,
		Pending:     snap.Pending,
		Throughput:  snap.Throughput,
		AvgExecMs:   float64(snap.AverageExecution.Microseconds()) / 1000,
		P99ExecMs:   float64(snap.P99Execution.Microseconds()) / 1000,
		ElapsedSecs: snap.Elapsed.Seconds(),
	})
}

// SubmitRequest はタスク投入リクエスト
type SubmitRequest struct {
	Value int64 `json:"value"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	accepted := s.pool.Submit(func(payload any) {
		v := payload.(int64)
		logger.Info("", "squared %d -> %d", v, v*v)
	}, req.Value)

	if !accepted {
		http.Error(w, "Pool is shutting down", http.StatusConflict)
		return
	}

	s.writeJSON(w, map[string]string{"status": "accepted"})
}

// WebSocket handling
func (s *Server) handleWebSocket(ws *websocket.Conn) {
	s.mu.Lock()
	s.wsClients[ws] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.wsClients, ws)
		s.mu.Unlock()
		_ = ws.Close()
	}()

	// Keep connection alive
	for {
		var msg string
		if err := websocket.Message.Receive(ws, &msg); err != nil {
			break
		}
	}
}

// eventLoop はバスのイベントをWebSocketクライアントへ転送する
func (s *Server) eventLoop(ctx context.Context) {
	if s.bus == nil {
		return
	}

	ch := s.bus.Subscribe()
	defer s.bus.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			s.broadcast(event)
		}
	}
}

func (s *Server) broadcast(data any) {
	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.wsClients))
	for ws := range s.wsClients {
		clients = append(clients, ws)
	}
	s.mu.RUnlock()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}

	for _, ws := range clients {
		_ = websocket.Message.Send(ws, string(jsonData))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("", "Failed to encode JSON: %v", err)
	}
}
