package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// SofficeConverter converts documents with LibreOffice in headless mode.
type SofficeConverter struct {
	path string
	log  *slog.Logger
}

func NewSofficeConverter(path string, log *slog.Logger) *SofficeConverter {
	if path == "" {
		path = "soffice"
	}
	if log == nil {
		log = slog.Default()
	}
	return &SofficeConverter{path: path, log: log}
}

func (c *SofficeConverter) Name() string { return "soffice" }

func (c *SofficeConverter) Convert(ctx context.Context, input, outDir string) error {
	cmd := exec.CommandContext(ctx, c.path, "--headless", "--convert-to", "pdf", "--outdir", outDir, input)
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	output := combineOutput(stdout.String(), stderr.String())
	c.log.Debug("soffice finished", "input", input, "elapsed", time.Since(start), "output", output)

	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.DeadlineExceeded) {
		return fmt.Errorf("soffice timed out: %w", ctxErr)
	}
	if err != nil {
		if output != "" {
			return fmt.Errorf("soffice failed: %w: %s", err, output)
		}
		return fmt.Errorf("soffice failed: %w", err)
	}
	return nil
}

func combineOutput(stdout, stderr string) string {
	stdout, stderr = strings.TrimSpace(stdout), strings.TrimSpace(stderr)
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stdout + "\n" + stderr
	}
}
