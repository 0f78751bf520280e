// Command sage-server runs the SAGE analytics backend: the sales dataset
// behind the data-overview and query endpoints the dashboard consumes.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"sage/internal/agent"
	"sage/internal/config"
	"sage/internal/dataset"
	"sage/internal/logger"
	"sage/internal/server"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	ds, err := dataset.Open(cfg.DataFile)
	if err != nil {
		log.Fatal("load dataset", zap.String("file", cfg.DataFile), zap.Error(err))
	}
	defer ds.Close()
	log.Info("dataset loaded",
		zap.String("file", cfg.DataFile),
		zap.Int("records", ds.TotalRecords()),
		zap.Strings("columns", ds.Columns()))

	var answerer agent.Answerer
	if cfg.GeminiAPIKey != "" {
		gemini, err := agent.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.Model, ds, log)
		if err != nil {
			log.Fatal("create gemini agent", zap.Error(err))
		}
		defer gemini.Close()
		answerer = gemini
		log.Info("agent ready", zap.String("model", cfg.Model))
	} else {
		answerer = agent.NewFallback(ds)
		log.Warn("GEMINI_API_KEY not set, answering from dataset aggregates only")
	}

	srv := server.New(ds, answerer, log)
	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := srv.Listen(cfg.Addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
