package usecase

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"cv-customizer/internal/model"
)

const (
	defaultCompany = "Unknown"
	defaultTitle   = "Position"

	runDirLayout = "20060102_150405"
)

// OutputName derives the base name of a run's files from the job record:
// CV_<company>_<title>, with each whitespace character replaced by an
// underscore.
func OutputName(m *model.Mapping) string {
	company, title := defaultCompany, defaultTitle
	if m != nil {
		if v := sanitize(m.Field("company_name")); v != "" {
			company = v
		}
		if v := sanitize(m.Field("job_title")); v != "" {
			title = v
		}
	}
	return "CV_" + company + "_" + title
}

// sanitize makes s usable as a file name component. Path separators and
// characters rejected by common filesystems become underscores.
func sanitize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RunDir is the folder a run writes into: <root>/<YYYYMMDD_HHMMSS>_<label>.
func RunDir(root string, ts time.Time, label string) string {
	return filepath.Join(root, ts.Format(runDirLayout)+"_"+label)
}
