package docx

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"cv-customizer/internal/domain"
)

const (
	wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNS  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// part is one parsed XML part of the package.
type part struct {
	name     string
	data     []byte
	story    Story
	runs     []*Run
	sections []*Section
}

func (p *part) dirty() bool {
	for _, r := range p.runs {
		if r.dirty() {
			return true
		}
	}
	return false
}

// render returns the part bytes with every changed run re-serialized.
func (p *part) render() []byte {
	if !p.dirty() {
		return p.data
	}
	var buf bytes.Buffer
	buf.Grow(len(p.data) + 256)
	var last int64
	for _, r := range p.runs {
		if !r.dirty() {
			continue
		}
		buf.Write(p.data[last:r.start])
		r.writeTo(&buf)
		last = r.end
	}
	buf.Write(p.data[last:])
	return buf.Bytes()
}

type parser struct {
	d    *xml.Decoder
	part *part
}

func parsePart(name string, data []byte) (*part, error) {
	p := &parser{
		d:    xml.NewDecoder(bytes.NewReader(data)),
		part: &part{name: name, data: data},
	}
	if err := p.root(); err != nil {
		return nil, err
	}
	return p.part, nil
}

// next returns the next token together with the byte offset it starts at.
func (p *parser) next() (xml.Token, int64, error) {
	off := p.d.InputOffset()
	tok, err := p.d.Token()
	return tok, off, err
}

func isWord(se xml.StartElement, local string) bool {
	return se.Name.Space == wordNS && se.Name.Local == local
}

func (p *parser) root() error {
	for {
		tok, _, err := p.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case isWord(se, "document"):
			// descend into the body
		case isWord(se, "body"), isWord(se, "hdr"), isWord(se, "ftr"):
			if err := p.blocks(&p.part.story); err != nil {
				return err
			}
		default:
			if err := p.d.Skip(); err != nil {
				return err
			}
		}
	}
}

// blocks reads block-level content up to the end of the current element.
func (p *parser) blocks(s *Story) error {
	for {
		tok, _, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				if err := p.d.Skip(); err != nil {
					return err
				}
				continue
			}
			switch t.Name.Local {
			case "p":
				para, err := p.paragraph()
				if err != nil {
					return err
				}
				s.paragraphs = append(s.paragraphs, para)
				s.order = append(s.order, domain.Block{Paragraph: para})
			case "tbl":
				tbl, err := p.table()
				if err != nil {
					return err
				}
				s.tables = append(s.tables, tbl)
				s.order = append(s.order, domain.Block{Table: tbl})
			case "sdt", "sdtContent", "customXml":
				if err := p.blocks(s); err != nil {
					return err
				}
			case "sectPr":
				if err := p.sectPr(); err != nil {
					return err
				}
			default:
				if err := p.d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) table() (*Table, error) {
	t := &Table{}
	return t, p.rows(t)
}

func (p *parser) rows(t *Table) error {
	for {
		tok, _, err := p.next()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case isWord(el, "tr"):
				row := &Row{}
				if err := p.cells(row); err != nil {
					return err
				}
				t.rows = append(t.rows, row)
			case isWord(el, "sdt"), isWord(el, "sdtContent"), isWord(el, "customXml"):
				if err := p.rows(t); err != nil {
					return err
				}
			default:
				if err := p.d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) cells(row *Row) error {
	for {
		tok, _, err := p.next()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case isWord(el, "tc"):
				cell := &Story{}
				if err := p.blocks(cell); err != nil {
					return err
				}
				row.cells = append(row.cells, cell)
			case isWord(el, "sdt"), isWord(el, "sdtContent"), isWord(el, "customXml"):
				if err := p.cells(row); err != nil {
					return err
				}
			default:
				if err := p.d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) paragraph() (*Paragraph, error) {
	para := &Paragraph{}
	return para, p.inline(para)
}

// inline reads paragraph content. Runs wrapped in hyperlinks, tracked
// insertions, smart tags and inline content controls belong to the paragraph.
func (p *parser) inline(para *Paragraph) error {
	for {
		tok, off, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				if err := p.d.Skip(); err != nil {
					return err
				}
				continue
			}
			switch t.Name.Local {
			case "r":
				r, err := p.run(off)
				if err != nil {
					return err
				}
				para.runs = append(para.runs, r)
				p.part.runs = append(p.part.runs, r)
			case "hyperlink", "ins", "moveTo", "smartTag", "customXml", "sdt", "sdtContent", "fldSimple", "dir", "bdo":
				if err := p.inline(para); err != nil {
					return err
				}
			case "pPr":
				if err := p.paragraphProps(); err != nil {
					return err
				}
			default:
				if err := p.d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphProps looks for a section break carried by the paragraph.
func (p *parser) paragraphProps() error {
	for {
		tok, _, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if isWord(t, "sectPr") {
				if err := p.sectPr(); err != nil {
					return err
				}
				continue
			}
			if err := p.d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) sectPr() error {
	sec := &Section{}
	for {
		tok, _, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isWord(t, "headerReference"):
				if id := attr(t, relNS, "id"); id != "" {
					sec.headerIDs = append(sec.headerIDs, id)
				}
			case isWord(t, "footerReference"):
				if id := attr(t, relNS, "id"); id != "" {
					sec.footerIDs = append(sec.footerIDs, id)
				}
			}
			if err := p.d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			p.part.sections = append(p.part.sections, sec)
			return nil
		}
	}
}

func attr(se xml.StartElement, space, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// elementPrefix returns the namespace prefix used in a raw start tag such as
// `<w:r w:rsidR="00AB">`.
func elementPrefix(raw []byte) string {
	s := string(raw)
	s = strings.TrimPrefix(s, "<")
	end := strings.IndexAny(s, " \t\r\n/>")
	if end >= 0 {
		s = s[:end]
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i]
	}
	return ""
}
