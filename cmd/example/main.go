// Command example runs the built-in example job against the configured
// template, creating a starter template first when none exists.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cv-customizer/internal/app"
	"cv-customizer/internal/config"
	"cv-customizer/internal/domain"
	"cv-customizer/internal/model"
	"cv-customizer/pkg/docx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if _, err := os.Stat(cfg.TemplatePath); errors.Is(err, os.ErrNotExist) {
		if err := writeStarter(cfg.TemplatePath); err != nil {
			log.Error("failed to create starter template", "path", cfg.TemplatePath, "error", err)
			os.Exit(1)
		}
		log.Info("created starter template", "path", cfg.TemplatePath)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	job := domain.NewCustomizationJob(model.ExampleLabel, "example")
	if err := a.Processor.Process(ctx, job, model.ExampleJob()); err != nil {
		os.Exit(1)
	}
	fmt.Printf("✓ Document saved: %s\n✓ PDF generated: %s\n", job.DocxPath, job.PDFPath)
}

func writeStarter(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	lines := make([]docx.Line, len(model.StarterTemplate))
	for i, text := range model.StarterTemplate {
		heading := text != "" && text == strings.ToUpper(text) && !strings.Contains(text, "{{")
		lines[i] = docx.Line{Text: text, Bold: heading}
	}
	return docx.CreateMinimal(path, lines)
}
