package main

import (
	"log"
	"log/slog"

	"github.com/JasonMadeSomething/claimbench/internal/backend"
	"github.com/JasonMadeSomething/claimbench/internal/config"
	"github.com/JasonMadeSomething/claimbench/internal/db"
	"github.com/JasonMadeSomething/claimbench/internal/labels"
	claudelabels "github.com/JasonMadeSomething/claimbench/internal/labels/claude"
	"github.com/JasonMadeSomething/claimbench/internal/logging"
	"github.com/JasonMadeSomething/claimbench/internal/settings"
	"github.com/JasonMadeSomething/claimbench/internal/syncer"
	"github.com/JasonMadeSomething/claimbench/internal/web"
	"github.com/JasonMadeSomething/claimbench/internal/workbench"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	prefs := settings.NewStore(database)
	client := backend.NewClient(cfg.BackendURL, cfg.BackendToken)

	// The workbench needs its sink at construction and the sync adapter
	// needs the workbench back for reconciliation, so wire in two steps.
	var adapter *syncer.Adapter
	bench := workbench.New(sinkFunc(func(ch workbench.Change) { adapter.Apply(ch) }), logger)
	adapter = syncer.New(client, bench, logger)
	defer adapter.Close()

	go func() {
		for re := range adapter.Failures() {
			logger.Warn("backend out of sync", "op", re.Change.Op, "error", re.Err)
		}
	}()

	analyzer := newLabelAnalyzer(cfg, logger)
	if analyzer != nil {
		logger.Info("label analyzer available", "backend", cfg.LabelBackend)
	}

	server := web.NewServer(bench, client, prefs, analyzer, logger)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

type sinkFunc func(workbench.Change)

func (f sinkFunc) Apply(ch workbench.Change) { f(ch) }

func newLabelAnalyzer(cfg *config.Config, logger *slog.Logger) labels.Analyzer {
	switch cfg.LabelBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when LABEL_BACKEND=claude")
			return nil
		}
		logger.Info("using Claude label backend")
		return claudelabels.New(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	default:
		return nil
	}
}
