package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/groepsplan/internal/compliance"
	"github.com/jonathan/groepsplan/internal/db"
	"github.com/jonathan/groepsplan/internal/metrics"
	"github.com/jonathan/groepsplan/internal/pipeline"
	"github.com/jonathan/groepsplan/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the prompt, analysis, upload and generation operations.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	m := metrics.New()
	deps := server.Deps{Config: cfg, Logger: logger, Metrics: m}

	var store pipeline.Store
	if cfg.Database.URL != "" {
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		deps.Store = database
		store = database
	} else {
		logger.Warn("no database configured, generations are not stored")
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		logger.Warn("generation disabled", zap.Error(err))
	} else {
		defer func() { _ = client.Close() }()
		p, err := pipeline.New(pipeline.Options{
			Client:      client,
			Tier:        cfg.LLM.Tier,
			MaxAttempts: cfg.Generation.MaxAttempts,
			Mode:        compliance.ModeFromStrict(cfg.Compliance.Strict),
			Experiment:  cfg.Generation.Experiment,
			Timeout:     cfg.Generation.Timeout,
			Logger:      logger,
			Metrics:     m,
			Store:       store,
		})
		if err != nil {
			return err
		}
		deps.Generator = p
		deps.Enricher = client
	}

	srv, err := server.New(deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
