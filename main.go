// Package main はアプリケーションのエントリーポイントを提供します。
package main

import (
	"fmt"
	"os"

	"github.com/stsysd/calheat/cli"
	"github.com/stsysd/calheat/config"
	"github.com/stsysd/calheat/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 設定の読み込み
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	// ロガーの初期化
	log, err := logger.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// パレットとカウントソースの準備
	app, err := cli.NewApp(cfg, log)
	if err != nil {
		return err
	}

	// コマンドの実行
	return cli.NewRootCmd(app).Execute()
}
