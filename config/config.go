// Package config はアプリケーション設定を管理します。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	// HTTPサーバーのポート
	Port string

	// 実行環境（development / production）
	Env string

	// ログレベル（debug / info / warn / error）
	LogLevel string

	// セルの一辺のピクセル数
	CellSize int

	// 乱数シード（0 の場合は毎回異なる値）
	Seed uint64

	// 追加のパレットを定義したTOMLファイル（任意）
	PaletteFile string

	// CORSで許可するオリジン
	CORSOrigins []string

	// IPアドレスごとの1分あたりのリクエスト上限（0 の場合は無制限）
	RateLimit int
}

// NewConfig は環境変数から設定を読み込み、Configインスタンスを生成します。
// カレントディレクトリに .env があれば先に読み込みます。既存の環境変数は上書きしません。
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	// ポートの設定
	port := getEnv("CALHEAT_SERVER_PORT", "8080")

	// セルサイズの設定
	cellSize, err := strconv.Atoi(getEnv("CALHEAT_CELL_SIZE", "15"))
	if err != nil || cellSize <= 0 {
		return nil, fmt.Errorf("invalid CALHEAT_CELL_SIZE: %q", os.Getenv("CALHEAT_CELL_SIZE"))
	}

	// シードの設定
	seed, err := strconv.ParseUint(getEnv("CALHEAT_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CALHEAT_SEED: %w", err)
	}

	// レート制限の設定
	rateLimit, err := strconv.Atoi(getEnv("CALHEAT_RATE_LIMIT", "600"))
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("invalid CALHEAT_RATE_LIMIT: %q", os.Getenv("CALHEAT_RATE_LIMIT"))
	}

	// CORSの設定
	var origins []string
	for _, o := range strings.Split(getEnv("CALHEAT_CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:        port,
		Env:         getEnv("CALHEAT_ENV", "development"),
		LogLevel:    getEnv("CALHEAT_LOG_LEVEL", "info"),
		CellSize:    cellSize,
		Seed:        seed,
		PaletteFile: os.Getenv("CALHEAT_PALETTE_FILE"),
		CORSOrigins: origins,
		RateLimit:   rateLimit,
	}, nil
}

// IsDevelopment は開発環境で動作しているかを返します。
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr はHTTPサーバーの待ち受けアドレスを返します。
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
