package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/service"
	"github.com/garyjia/bizdoc/internal/config"
	"github.com/garyjia/bizdoc/internal/container"
	"github.com/garyjia/bizdoc/internal/domain/entity"
	"github.com/garyjia/bizdoc/pkg/utils"
)

// export writes the document register to export.output_dir
func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	docType := flag.String("type", "", "only export documents of this type")
	query := flag.String("q", "", "only export documents whose client or number matches")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: "stderr",
		Format:     "console",
		Name:       "export",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *docType, *query); err != nil {
		logger.Error("Export failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, docType, query string) error {
	filter := service.ListFilter{Query: query}
	if docType != "" {
		t, err := entity.ParseDocumentType(docType)
		if err != nil {
			return fmt.Errorf("%w: %s", err, docType)
		}
		filter.Type = t
	}

	ctx := context.Background()
	c, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		return err
	}
	if err := c.Start(ctx); err != nil {
		return err
	}
	defer c.Close()

	if err := os.MkdirAll(cfg.Export.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(cfg.Export.OutputDir,
		fmt.Sprintf("register_%s.xlsx", time.Now().Format("20060102_150405")))

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := c.Services().Export.Register(ctx, file, filter); err != nil {
		_ = file.Close()
		_ = os.Remove(outputPath)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logger.Info("Register exported", zap.String("output_path", outputPath))
	return nil
}
