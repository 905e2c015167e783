package docx

import "cv-customizer/internal/domain"

// Story is a flow of paragraphs and tables: the body, a table cell, a header
// or a footer.
type Story struct {
	paragraphs []*Paragraph
	tables     []*Table
	order      []domain.Block
}

func (s *Story) Paragraphs() []domain.Paragraph {
	out := make([]domain.Paragraph, len(s.paragraphs))
	for i, p := range s.paragraphs {
		out[i] = p
	}
	return out
}

func (s *Story) Tables() []domain.Table {
	out := make([]domain.Table, len(s.tables))
	for i, t := range s.tables {
		out[i] = t
	}
	return out
}

func (s *Story) Blocks() []domain.Block {
	return append([]domain.Block(nil), s.order...)
}

type Paragraph struct {
	runs []*Run
}

func (p *Paragraph) Fragments() []domain.Fragment {
	out := make([]domain.Fragment, len(p.runs))
	for i, r := range p.runs {
		out[i] = r
	}
	return out
}

// Runs returns the paragraph's runs in document order.
func (p *Paragraph) Runs() []*Run { return p.runs }

func (p *Paragraph) Text() string { return domain.ParagraphText(p) }

type Table struct {
	rows []*Row
}

func (t *Table) Rows() []domain.Row {
	out := make([]domain.Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = r
	}
	return out
}

type Row struct {
	cells []*Story
}

func (r *Row) Cells() []domain.Story {
	out := make([]domain.Story, len(r.cells))
	for i, c := range r.cells {
		out[i] = c
	}
	return out
}

// Section holds the header and footer parts a w:sectPr refers to.
type Section struct {
	headerIDs []string
	footerIDs []string
	headers   []*Story
	footers   []*Story
}

func (s *Section) Headers() []domain.Story {
	out := make([]domain.Story, len(s.headers))
	for i, h := range s.headers {
		out[i] = h
	}
	return out
}

func (s *Section) Footers() []domain.Story {
	out := make([]domain.Story, len(s.footers))
	for i, f := range s.footers {
		out[i] = f
	}
	return out
}
