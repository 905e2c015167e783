// Package memdoc is an in-memory implementation of the domain document model.
package memdoc

import (
	"encoding/json"
	"os"

	"cv-customizer/internal/domain"
)

type Run struct {
	Value string       `json:"text"`
	Fmt   domain.Style `json:"style"`
}

func (r *Run) Text() string                   { return r.Value }
func (r *Run) SetText(s string)               { r.Value = s }
func (r *Run) Style() domain.Style            { return r.Fmt }
func (r *Run) SetStyle(s domain.Style)        { r.Fmt = s }
func R(text string) *Run                      { return &Run{Value: text} }
func Styled(text string, s domain.Style) *Run { return &Run{Value: text, Fmt: s} }

type Paragraph struct {
	Runs []*Run `json:"runs"`
}

func P(runs ...*Run) *Paragraph { return &Paragraph{Runs: runs} }

func (p *Paragraph) Fragments() []domain.Fragment {
	out := make([]domain.Fragment, len(p.Runs))
	for i, r := range p.Runs {
		out[i] = r
	}
	return out
}

func (p *Paragraph) Text() string { return domain.ParagraphText(p) }

type Story struct {
	Paras []*Paragraph `json:"paragraphs"`
	Tbls  []*Table     `json:"tables,omitempty"`
	// TableAt[i] is the number of paragraphs that precede table i. Tables
	// without an entry follow the last paragraph.
	TableAt []int `json:"table_at,omitempty"`
}

func S(paras ...*Paragraph) *Story { return &Story{Paras: paras} }

func (s *Story) Paragraphs() []domain.Paragraph {
	out := make([]domain.Paragraph, len(s.Paras))
	for i, p := range s.Paras {
		out[i] = p
	}
	return out
}

func (s *Story) Tables() []domain.Table {
	out := make([]domain.Table, len(s.Tbls))
	for i, t := range s.Tbls {
		out[i] = t
	}
	return out
}

func (s *Story) Blocks() []domain.Block {
	out := make([]domain.Block, 0, len(s.Paras)+len(s.Tbls))
	t := 0
	tableBefore := func(n int) bool {
		return t < len(s.Tbls) && t < len(s.TableAt) && s.TableAt[t] <= n
	}
	for i, p := range s.Paras {
		for tableBefore(i) {
			out = append(out, domain.Block{Table: s.Tbls[t]})
			t++
		}
		out = append(out, domain.Block{Paragraph: p})
	}
	for ; t < len(s.Tbls); t++ {
		out = append(out, domain.Block{Table: s.Tbls[t]})
	}
	return out
}

type Row struct {
	Cs []*Story `json:"cells"`
}

func (r *Row) Cells() []domain.Story {
	out := make([]domain.Story, len(r.Cs))
	for i, c := range r.Cs {
		out[i] = c
	}
	return out
}

type Table struct {
	Rs []*Row `json:"rows"`
}

// T builds a table from rows of cells.
func T(rows ...[]*Story) *Table {
	t := &Table{}
	for _, cells := range rows {
		t.Rs = append(t.Rs, &Row{Cs: cells})
	}
	return t
}

func (t *Table) Rows() []domain.Row {
	out := make([]domain.Row, len(t.Rs))
	for i, r := range t.Rs {
		out[i] = r
	}
	return out
}

type Section struct {
	Hdrs []*Story `json:"headers,omitempty"`
	Ftrs []*Story `json:"footers,omitempty"`
}

func (s *Section) Headers() []domain.Story {
	out := make([]domain.Story, len(s.Hdrs))
	for i, h := range s.Hdrs {
		out[i] = h
	}
	return out
}

func (s *Section) Footers() []domain.Story {
	out := make([]domain.Story, len(s.Ftrs))
	for i, f := range s.Ftrs {
		out[i] = f
	}
	return out
}

type Document struct {
	Main *Story     `json:"body"`
	Secs []*Section `json:"sections,omitempty"`
	// SavedTo records the paths Save wrote to.
	SavedTo []string `json:"-"`
}

func New(body *Story, sections ...*Section) *Document {
	if body == nil {
		body = &Story{}
	}
	return &Document{Main: body, Secs: sections}
}

func (d *Document) Body() domain.Story { return d.Main }

func (d *Document) Sections() []domain.Section {
	out := make([]domain.Section, len(d.Secs))
	for i, s := range d.Secs {
		out[i] = s
	}
	return out
}

// Save writes the document as indented JSON.
func (d *Document) Save(path string) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	d.SavedTo = append(d.SavedTo, path)
	return nil
}

// Load reads a document written by Save.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := &Document{}
	if err := json.Unmarshal(b, d); err != nil {
		return nil, err
	}
	if d.Main == nil {
		d.Main = &Story{}
	}
	return d, nil
}
