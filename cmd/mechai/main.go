package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/cli"
	"github.com/BruksfildServices01/mech-ai/internal/config"
	"github.com/BruksfildServices01/mech-ai/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if err := cli.NewRootCmd(cfg, log).Execute(); err != nil {
		log.Error("mechai failed", zap.Error(err))
		os.Exit(1)
	}
}
