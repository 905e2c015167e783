package infrastructure

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"cv-customizer/internal/placeholder"
)

// PDFInspector validates converter output and scans its text layer.
type PDFInspector struct {
	conf *model.Configuration
}

func NewPDFInspector() *PDFInspector {
	return &PDFInspector{conf: model.NewDefaultConfiguration()}
}

// Verify validates the PDF structure and returns the page count.
func (i *PDFInspector) Verify(path string) (int, error) {
	if err := api.ValidateFile(path, i.conf); err != nil {
		return 0, fmt.Errorf("pdf validation failed: %w", err)
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("pdf has no pages")
	}
	return n, nil
}

// Leftover returns the distinct placeholder tokens found in the PDF text.
func (i *PDFInspector) Leftover(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var text strings.Builder
	for n := 1; n <= r.NumPage(); n++ {
		p := r.Page(n)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", n, err)
		}
		text.WriteString(content)
		text.WriteByte('\n')
	}

	var out []string
	seen := map[string]bool{}
	for _, t := range placeholder.TokensIn(text.String()) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}
