// Package main is the entry point for reqpool.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"reqpool/internal/api"
	"reqpool/internal/config"
	"reqpool/internal/events"
	"reqpool/internal/logger"
	"reqpool/internal/pool"
)

var (
	version = "dev"
)

func main() {
	// フラグ定義
	var (
		configFile  = flag.String("config", "", "設定ファイルパス (YAML/JSON)")
		workers     = flag.Int("workers", 0, "ワーカー数 (0で設定ファイルまたはデフォルト値)")
		values      = flag.String("values", "", "2乗するデモ値のカンマ区切りリスト (例: 1,2,3)")
		logLevel    = flag.String("log-level", "", "ログレベル (debug, info, warn, error)")
		serverMode  = flag.Bool("server", false, "ステータスサーバーモードで起動")
		serverAddr  = flag.String("addr", "", "サーバーアドレス (例: :8080)")
		showVersion = flag.Bool("version", false, "バージョンを表示")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `reqpool - Fixed-Size Worker Pool over a Shared FIFO

Usage:
  reqpool [options]

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # デフォルトのデモ (13個の値を3ワーカーで2乗)
  reqpool

  # ワーカー数と値を指定
  reqpool --workers 5 --values 2,4,6,8

  # 設定ファイルから実行
  reqpool --config pool.yaml

  # ステータスサーバーモードで起動
  reqpool --server --addr :8080
`)
	}

	flag.Parse()

	// バージョン表示
	if *showVersion {
		fmt.Printf("reqpool version %s\n", version)
		return
	}

	// 設定の決定
	cfg, err := buildConfig(*configFile, *workers, *values, *logLevel, *serverMode, *serverAddr)
	if err != nil {
		logger.Error("", "設定エラー: %v", err)
		os.Exit(1)
	}

	if cfg.Log.Level != "" {
		level, err := logger.ParseLevel(cfg.Log.Level)
		if err != nil {
			logger.Error("", "設定エラー: %v", err)
			os.Exit(1)
		}
		logger.Default.SetLevel(level)
	}

	// サーバーモード
	if cfg.Server.Enabled {
		if err := runServer(cfg); err != nil {
			logger.Error("", "サーバーエラー: %v", err)
			os.Exit(1)
		}
		return
	}

	// デモ実行
	if err := runDemo(cfg); err != nil {
		logger.Error("", "デモ実行エラー: %v", err)
		os.Exit(1)
	}
}

// buildConfig は設定ファイルとフラグから設定を構築する
func buildConfig(
	configFile string, workers int, values, logLevel string,
	serverMode bool, serverAddr string,
) (config.FileConfig, error) {
	cfg := config.Default()

	// 1. 設定ファイルから読み込み
	if configFile != "" {
		fileConfig, err := config.LoadFile(configFile)
		if err != nil {
			return cfg, fmt.Errorf("設定ファイル読み込みエラー: %w", err)
		}
		if err := fileConfig.Validate(); err != nil {
			return cfg, fmt.Errorf("設定検証エラー: %w", err)
		}
		cfg = *fileConfig
	}

	// 2. フラグでオーバーライド
	if workers > 0 {
		cfg.Pool.Workers = workers
	}
	if values != "" {
		parsed, err := parseValues(values)
		if err != nil {
			return cfg, err
		}
		cfg.Demo.Values = parsed
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if serverMode {
		cfg.Server.Enabled = true
	}
	if serverAddr != "" {
		cfg.Server.Addr = serverAddr
	}

	return cfg, cfg.Validate()
}

// parseValues はカンマ区切りの整数リストをパースする
func parseValues(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	values := make([]int64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("不正な値 %q: %w", part, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// squareValue は払い出された値をその2乗で置き換える
func squareValue(payload any) {
	v := payload.(*int64)
	*v = *v * *v
}

// runDemo は2乗デモワークロードを実行する
func runDemo(cfg config.FileConfig) error {
	fmt.Println("reqpool - Fixed-Size Worker Pool Demo")
	fmt.Println("=====================================")
	fmt.Printf("Workers: %d, Values: %d\n", cfg.Pool.Workers, len(cfg.Demo.Values))
	fmt.Println("=====================================")
	fmt.Println()

	values := make([]int64, len(cfg.Demo.Values))
	copy(values, cfg.Demo.Values)

	p := pool.New(cfg.Pool.Workers)
	p.Start()

	for i := range values {
		if !p.Submit(squareValue, &values[i]) {
			return fmt.Errorf("submit rejected for value %d", values[i])
		}
		// ときどき少し待ってワーカーに処理の機会を与える
		if rand.Intn(4) == 0 {
			time.Sleep(10 * time.Nanosecond)
		}
	}

	// キューを空にして全ワーカーの終了を待つ
	p.Stop()

	fmt.Println("Glory, we are done.")
	for _, v := range values {
		fmt.Printf("%d ", v)
	}
	fmt.Println()

	snap := p.Metrics().Snapshot()
	fmt.Printf("\nexecuted=%d avg=%v elapsed=%v\n", snap.Executed, snap.AverageExecution, snap.Elapsed)

	return nil
}

// runServer はステータスサーバーモードで起動する
func runServer(cfg config.FileConfig) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\n中断シグナルを受信、サーバーを終了中...")
		cancel()
	}()

	bus := events.NewBus()
	defer bus.Close()

	p := pool.NewWithConfig(pool.Config{
		Workers: cfg.Pool.Workers,
		Bus:     bus,
	})
	p.Start()
	defer p.Stop()

	server := api.NewServer(cfg.Server.Addr, p, bus)
	return server.Start(ctx)
}
