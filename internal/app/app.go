// Package app wires the customization pipeline from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"cv-customizer/internal/adapter/repository"
	"cv-customizer/internal/config"
	"cv-customizer/internal/infrastructure/migration"
	"cv-customizer/internal/usecase"
	"cv-customizer/pkg/docx"
	infra "cv-customizer/pkg/infrastructure"
)

type App struct {
	Processor *usecase.Processor
	Runs      *repository.RunsRepo
	close     func()
}

func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

// New builds the processor with LibreOffice as primary converter and
// headless Chrome as fallback. A configured runs database is connected and
// migrated; failing to reach it only disables persistence.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	a := &App{}

	pool, err := infra.NewRunsPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn("runs database not available", "error", err)
		pool = nil
	}
	if pool != nil {
		if err := migration.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		a.close = pool.Close
	}
	a.Runs = repository.NewRunsRepo(pool)

	converters := []usecase.Converter{infra.NewSofficeConverter(cfg.SofficePath, log)}
	if !cfg.DisableFallback {
		converters = append(converters, infra.NewChromeConverter(cfg.ChromePath, docx.Load, log))
	}
	inspector := infra.NewPDFInspector()
	var verifier usecase.Verifier
	if cfg.VerifyPDF {
		verifier = inspector
	}
	exporter := usecase.NewExporter(log, cfg.ConvertTimeout, verifier, converters...)

	a.Processor = usecase.NewProcessor(docx.Load, cfg.TemplatePath, cfg.OutputRoot, exporter, log,
		usecase.WithRepo(a.Runs),
		usecase.WithAuditor(inspector),
	)
	return a, nil
}
