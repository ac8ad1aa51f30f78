package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/product-extractor/internal/api"
	"github.com/donaldgifford/product-extractor/internal/config"
	"github.com/donaldgifford/product-extractor/internal/engine"
	"github.com/donaldgifford/product-extractor/pkg/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the extraction API server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func loadServerConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}

	log := logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	eng := engine.NewEngine(
		engine.WithLogger(log),
		engine.WithMaxDocumentBytes(cfg.Extraction.MaxDocumentBytes),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return api.NewServer(cfg, eng, log, Version).Run(ctx)
}
