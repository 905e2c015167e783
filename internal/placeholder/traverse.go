package placeholder

import (
	"log/slog"
	"strings"

	"cv-customizer/internal/domain"
	"cv-customizer/internal/model"
)

// Report summarizes one substitution pass over a document.
type Report struct {
	Paragraphs int
	Replaced   map[string]int
	// Unresolved lists the distinct tokens still present after the pass, in
	// the order they were first seen.
	Unresolved []string
}

// Total is the number of replacements across all keys.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Replaced {
		n += c
	}
	return n
}

// Replacer runs the rewriter over every paragraph of a document.
type Replacer struct {
	log *slog.Logger
}

func NewReplacer(log *slog.Logger) *Replacer {
	if log == nil {
		log = slog.Default()
	}
	return &Replacer{log: log}
}

// ReplaceAll substitutes every key of m throughout doc: body paragraphs, all
// table cells (nested tables included), then each section's headers and
// footers. Stories shared by several sections are visited once. Keys absent
// from the document are ignored.
func (r *Replacer) ReplaceAll(doc domain.Document, m *model.Mapping) *Report {
	rep := &Report{Replaced: map[string]int{}}
	keys := m.Keys()
	rendered := make(map[string]string, len(keys))
	tokens := make([]string, len(keys))
	for i, k := range keys {
		v, _ := m.Get(k)
		rendered[k] = Render(v)
		tokens[i] = Token(k)
	}

	Walk(doc, func(p domain.Paragraph) {
		rep.Paragraphs++
		text := domain.ParagraphText(p)
		if !containsAny(text, tokens) {
			return
		}
		for _, k := range keys {
			if n := Apply(p, k, rendered[k]); n > 0 {
				rep.Replaced[k] += n
				r.log.Debug("placeholder replaced", "key", k, "count", n)
			}
		}
	})

	rep.Unresolved = FindTokens(doc)
	for _, k := range keys {
		if rep.Replaced[k] == 0 {
			r.log.Debug("placeholder not found in template", "key", k)
		}
	}
	if len(rep.Unresolved) > 0 {
		r.log.Warn("unresolved placeholders remain", "tokens", rep.Unresolved)
	}
	return rep
}

func containsAny(text string, tokens []string) bool {
	if !strings.Contains(text, "{{") {
		return false
	}
	for _, t := range tokens {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// Walk calls fn for every paragraph eligible for substitution.
func Walk(doc domain.Document, fn func(domain.Paragraph)) {
	seen := map[domain.Story]bool{}
	walkStory(doc.Body(), fn)
	for _, sec := range doc.Sections() {
		for _, s := range sec.Headers() {
			if !seen[s] {
				seen[s] = true
				walkStory(s, fn)
			}
		}
		for _, s := range sec.Footers() {
			if !seen[s] {
				seen[s] = true
				walkStory(s, fn)
			}
		}
	}
}

func walkStory(s domain.Story, fn func(domain.Paragraph)) {
	if s == nil {
		return
	}
	for _, p := range s.Paragraphs() {
		fn(p)
	}
	for _, t := range s.Tables() {
		for _, row := range t.Rows() {
			for _, cell := range row.Cells() {
				walkStory(cell, fn)
			}
		}
	}
}
