package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Converter turns an editable document into a PDF. Convert writes
// <outDir>/<input base name>.pdf.
type Converter interface {
	Name() string
	Convert(ctx context.Context, input, outDir string) error
}

// Verifier checks a produced PDF and reports its page count.
type Verifier interface {
	Verify(path string) (int, error)
}

// Auditor lists placeholder tokens still visible in a produced PDF.
type Auditor interface {
	Leftover(path string) ([]string, error)
}

// Attempt records one failed converter invocation.
type Attempt struct {
	Converter string
	Err       error
}

// ConversionError is returned when every converter failed.
type ConversionError struct {
	Attempts []Attempt
}

func (e *ConversionError) Error() string {
	if len(e.Attempts) == 0 {
		return "pdf conversion failed: no converter configured"
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %v", a.Converter, a.Err)
	}
	return "pdf conversion failed: " + strings.Join(parts, "; ")
}

func (e *ConversionError) Unwrap() []error {
	out := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		out[i] = a.Err
	}
	return out
}

// ExportResult describes a successful conversion.
type ExportResult struct {
	PDFPath   string
	Converter string
	Pages     int
}

// Exporter runs converters in order until one produces a usable PDF.
type Exporter struct {
	converters []Converter
	verifier   Verifier
	timeout    time.Duration
	log        *slog.Logger
}

// NewExporter returns an exporter trying converters in the given order. A
// nil verifier skips PDF validation; a zero timeout leaves attempts bounded
// only by the caller's context.
func NewExporter(log *slog.Logger, timeout time.Duration, verifier Verifier, converters ...Converter) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{converters: converters, verifier: verifier, timeout: timeout, log: log}
}

// Export converts docxPath and places the result at pdfPath.
func (e *Exporter) Export(ctx context.Context, docxPath, pdfPath string) (*ExportResult, error) {
	outDir := filepath.Dir(pdfPath)
	base := strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))
	artifact := filepath.Join(outDir, base+".pdf")

	convErr := &ConversionError{}
	for i, c := range e.converters {
		if err := ctx.Err(); err != nil {
			convErr.Attempts = append(convErr.Attempts, Attempt{Converter: c.Name(), Err: err})
			return nil, convErr
		}
		if i > 0 {
			e.log.Info("trying fallback converter", "converter", c.Name())
		}
		pages, err := e.attempt(ctx, c, docxPath, outDir, artifact)
		if err != nil {
			e.log.Warn("pdf conversion failed", "converter", c.Name(), "error", err)
			convErr.Attempts = append(convErr.Attempts, Attempt{Converter: c.Name(), Err: err})
			_ = os.Remove(artifact)
			continue
		}
		if artifact != pdfPath {
			if err := os.Rename(artifact, pdfPath); err != nil {
				return nil, fmt.Errorf("failed to move %s to %s: %w", artifact, pdfPath, err)
			}
		}
		e.log.Info("pdf generated", "path", pdfPath, "converter", c.Name(), "pages", pages)
		return &ExportResult{PDFPath: pdfPath, Converter: c.Name(), Pages: pages}, nil
	}
	return nil, convErr
}

func (e *Exporter) attempt(ctx context.Context, c Converter, input, outDir, artifact string) (int, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	if err := c.Convert(ctx, input, outDir); err != nil {
		return 0, err
	}
	info, err := os.Stat(artifact)
	if err != nil {
		return 0, fmt.Errorf("expected output %s: %w", artifact, err)
	}
	if info.Size() == 0 {
		return 0, errors.New("converter produced an empty file")
	}
	if e.verifier == nil {
		return 0, nil
	}
	pages, err := e.verifier.Verify(artifact)
	if err != nil {
		return 0, fmt.Errorf("invalid pdf: %w", err)
	}
	return pages, nil
}
