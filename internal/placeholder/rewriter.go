package placeholder

import (
	"strings"

	"cv-customizer/internal/domain"
)

// Apply replaces every occurrence of key's token in p with the rendered value
// and returns how many were replaced. Each step rewrites the first remaining
// occurrence; the number of steps is bounded by the occurrences present
// before the first rewrite, so a value that reproduces the token cannot loop.
func Apply(p domain.Paragraph, key, rendered string) int {
	token := Token(key)
	limit := strings.Count(domain.ParagraphText(p), token)
	n := 0
	for n < limit {
		if !applyOnce(p, token, rendered) {
			break
		}
		n++
	}
	return n
}

func applyOnce(p domain.Paragraph, token, rendered string) bool {
	m := Locate(p, token)
	switch m.Kind {
	case SingleFragment:
		f := p.Fragments()[m.Fragment]
		f.SetText(strings.Replace(f.Text(), token, rendered, 1))
		return true
	case SpansFragments:
		mergeReplace(p.Fragments(), token, rendered)
		return true
	default:
		return false
	}
}

// mergeReplace collapses all fragments into the first one. The merged text
// takes the style the first fragment had before the rewrite; the remaining
// fragments stay in place with empty text.
func mergeReplace(frags []domain.Fragment, token, rendered string) {
	if len(frags) == 0 {
		return
	}
	styles := make([]domain.Style, len(frags))
	var b strings.Builder
	for i, f := range frags {
		styles[i] = f.Style()
		b.WriteString(f.Text())
	}
	merged := strings.Replace(b.String(), token, rendered, 1)

	for _, f := range frags {
		f.SetText("")
	}
	frags[0].SetText(merged)
	frags[0].SetStyle(styles[0])
}
