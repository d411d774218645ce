package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig は設定ファイルの構造
type FileConfig struct {
	Pool   PoolConfig   `yaml:"pool" json:"pool"`
	Log    LogConfig    `yaml:"log" json:"log"`
	Server ServerConfig `yaml:"server" json:"server"`
	Demo   DemoConfig   `yaml:"demo" json:"demo"`
}

// PoolConfig はワーカープール設定
type PoolConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// LogConfig はログ設定
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// ServerConfig はステータスサーバー設定
type ServerConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

// DemoConfig はデモワークロード設定
type DemoConfig struct {
	Values []int64 `yaml:"values" json:"values"`
}

// Default はデフォルト設定を返す
// ワーカー3、2乗デモ用の13個の値
func Default() FileConfig {
	return FileConfig{
		Pool: PoolConfig{Workers: 3},
		Log:  LogConfig{Level: "info"},
		Server: ServerConfig{
			Enabled: false,
			Addr:    ":8080",
		},
		Demo: DemoConfig{
			Values: []int64{1, 12, 21323, 12, 31312, 1, 13, 3, 5, 7, 8, 9, 943},
		},
	}
}

// LoadFile は設定ファイルを読み込む
// 拡張子で YAML / JSON を判別し、省略されたフィールドはデフォルト値のまま
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &config, nil
}

// Validate は設定を検証する
func (f *FileConfig) Validate() error {
	if f.Pool.Workers < 0 {
		return fmt.Errorf("pool.workers must be non-negative")
	}

	if f.Log.Level != "" {
		switch strings.ToLower(f.Log.Level) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("unknown log level: %s", f.Log.Level)
		}
	}

	if f.Server.Enabled && f.Server.Addr == "" {
		return fmt.Errorf("server.addr is required when server is enabled")
	}

	return nil
}
