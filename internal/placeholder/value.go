package placeholder

import (
	"strings"

	"cv-customizer/internal/model"
)

const Bullet = "• "

// Render converts a replacement value into the text written into the
// document. Lists become bullet lines joined by newlines; an empty list
// renders as nothing.
func Render(v model.Value) string {
	if !v.IsList {
		return v.Text
	}
	if len(v.Items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, it := range v.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Bullet)
		b.WriteString(it)
	}
	return b.String()
}
