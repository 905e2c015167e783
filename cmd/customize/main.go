// Command customize fills the CV template from one job record or a directory
// of records.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"cv-customizer/internal/app"
	"cv-customizer/internal/config"
	"cv-customizer/internal/domain"
	"cv-customizer/internal/model"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	data := flag.String("data", "", "job record JSON file")
	jobs := flag.String("jobs", "", "directory of *.json job records")
	label := flag.String("label", "", "output name (default CV_<company>_<title>)")
	flag.StringVar(&cfg.TemplatePath, "template", cfg.TemplatePath, "template .docx")
	flag.StringVar(&cfg.OutputRoot, "out", cfg.OutputRoot, "output root directory")
	flag.BoolVar(&cfg.FailFast, "fail-fast", cfg.FailFast, "stop a batch at the first failing record")
	flag.Parse()

	if (*data == "") == (*jobs == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -data or -jobs is required")
		flag.Usage()
		return 2
	}

	log := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		return 1
	}
	defer a.Close()

	if *jobs != "" {
		res, err := a.Processor.RunBatch(ctx, *jobs, cfg.FailFast)
		if err != nil {
			log.Error("batch aborted", "error", err)
			return 1
		}
		for _, j := range res.Succeeded {
			fmt.Printf("✓ %s\n  %s\n  %s\n", j.Label, j.DocxPath, j.PDFPath)
		}
		for _, f := range res.Failed {
			fmt.Printf("✗ %s: %v\n", f.File, f.Err)
		}
		if !res.OK() {
			return 1
		}
		return 0
	}

	raw, err := os.ReadFile(*data)
	if err != nil {
		log.Error("failed to read job record", "error", err)
		return 1
	}
	m, err := model.ParseRecord(raw)
	if err != nil {
		log.Error("invalid job record", "file", *data, "error", err)
		return 1
	}
	job := domain.NewCustomizationJob(*label, *data)
	if err := a.Processor.Process(ctx, job, m); err != nil {
		return 1
	}
	fmt.Printf("✓ Document saved: %s\n✓ PDF generated: %s\n", job.DocxPath, job.PDFPath)
	return 0
}
