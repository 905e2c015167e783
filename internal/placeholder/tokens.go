package placeholder

import (
	"regexp"

	"cv-customizer/internal/domain"
)

var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.\-]*)\s*\}\}`)

// FindTokens returns the distinct {{key}} tokens present in doc, in the order
// they are first encountered.
func FindTokens(doc domain.Document) []string {
	var out []string
	seen := map[string]bool{}
	Walk(doc, func(p domain.Paragraph) {
		for _, t := range TokensIn(domain.ParagraphText(p)) {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	})
	return out
}

// TokensIn returns every token occurrence in text.
func TokensIn(text string) []string {
	return tokenRe.FindAllString(text, -1)
}

// Occurrence describes one token found in a paragraph.
type Occurrence struct {
	Token string
	Text  string
	Match Match
}

// Inspect lists every token occurrence in doc together with how it is laid
// out across fragments.
func Inspect(doc domain.Document) []Occurrence {
	var out []Occurrence
	Walk(doc, func(p domain.Paragraph) {
		text := domain.ParagraphText(p)
		for _, t := range TokensIn(text) {
			out = append(out, Occurrence{Token: t, Text: text, Match: Locate(p, t)})
		}
	})
	return out
}
