package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"cv-customizer/internal/domain"
)

// ChromeConverter prints an HTML view of the document with headless Chrome.
// It is the fallback when LibreOffice is unavailable.
type ChromeConverter struct {
	execPath string
	load     func(path string) (domain.Document, error)
	log      *slog.Logger
}

func NewChromeConverter(execPath string, load func(string) (domain.Document, error), log *slog.Logger) *ChromeConverter {
	if log == nil {
		log = slog.Default()
	}
	return &ChromeConverter{execPath: execPath, load: load, log: log}
}

func (c *ChromeConverter) Name() string { return "chrome" }

func (c *ChromeConverter) Convert(ctx context.Context, input, outDir string) error {
	doc, err := c.load(input)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", input, err)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	tmpDir, err := os.MkdirTemp("", "cv-html-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return err
	}
	if err := WriteHTML(f, base, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	pdf, err := c.print(ctx, "file://"+htmlPath)
	if err != nil {
		return fmt.Errorf("chrome print failed: %w", err)
	}
	out := filepath.Join(outDir, base+".pdf")
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return err
	}
	c.log.Debug("chrome printed document", "input", input, "bytes", len(pdf))
	return nil
}

func (c *ChromeConverter) print(ctx context.Context, url string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	var buf []byte
	err := chromedp.Run(cctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
