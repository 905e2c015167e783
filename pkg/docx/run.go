package docx

import (
	"bytes"
	"encoding/xml"
	"strings"
	"unicode/utf8"

	"cv-customizer/internal/domain"
)

type childKind int

const (
	childText childKind = iota
	childRaw
)

// child is an element inside a run. Text children (w:t, w:tab, w:br, w:cr)
// contribute to the run text; raw children are kept as they are.
type child struct {
	kind       childKind
	text       string
	start, end int64
}

// Run is a w:r element. It implements domain.Fragment.
type Run struct {
	part        *part
	start       int64
	tagEnd      int64
	end         int64
	prefix      string
	selfClosing bool
	props       *runProps
	children    []child

	origText  string
	text      string
	origStyle domain.Style
	style     domain.Style
}

func (r *Run) Text() string             { return r.text }
func (r *Run) SetText(text string)      { r.text = text }
func (r *Run) Style() domain.Style      { return r.style }
func (r *Run) SetStyle(s domain.Style)  { r.style = s }
func (r *Run) dirty() bool              { return r.text != r.origText || r.style != r.origStyle }
func (r *Run) name(local string) string { return qualify(r.prefix, local) }

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func (p *parser) run(start int64) (*Run, error) {
	r := &Run{part: p.part, start: start, tagEnd: p.d.InputOffset()}
	raw := p.part.data[start:r.tagEnd]
	r.prefix = elementPrefix(raw)
	r.selfClosing = bytes.HasSuffix(raw, []byte("/>"))

	var text strings.Builder
	for {
		tok, off, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			c := child{kind: childRaw, start: off}
			switch {
			case isWord(t, "rPr"):
				props, err := p.runProps(off)
				if err != nil {
					return nil, err
				}
				r.props = props
				continue
			case isWord(t, "t"):
				s, err := p.charData()
				if err != nil {
					return nil, err
				}
				c.kind, c.text = childText, s
			case isWord(t, "tab"):
				c.kind, c.text = childText, "\t"
				err = p.d.Skip()
			case isWord(t, "cr"):
				c.kind, c.text = childText, "\n"
				err = p.d.Skip()
			case isWord(t, "br"):
				if typ := attr(t, wordNS, "type"); typ == "" || typ == "textWrapping" {
					c.kind, c.text = childText, "\n"
				}
				err = p.d.Skip()
			default:
				err = p.d.Skip()
			}
			if err != nil {
				return nil, err
			}
			c.end = p.d.InputOffset()
			if c.kind == childText {
				text.WriteString(c.text)
			}
			r.children = append(r.children, c)
		case xml.EndElement:
			r.end = p.d.InputOffset()
			r.origText = text.String()
			r.text = r.origText
			if r.props != nil {
				r.origStyle = r.props.style
			}
			r.style = r.origStyle
			return r, nil
		}
	}
}

func (p *parser) charData() (string, error) {
	var b strings.Builder
	for {
		tok, err := p.d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if err := p.d.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

// writeTo serializes the run with its current text and style.
func (r *Run) writeTo(buf *bytes.Buffer) {
	if r.selfClosing {
		buf.WriteString("<" + r.name("r") + ">")
	} else {
		buf.Write(r.part.data[r.start:r.tagEnd])
	}
	r.writeProps(buf)
	r.writeChildren(buf)
	buf.WriteString("</" + r.name("r") + ">")
}

// writeChildren emits the run content. Raw children stay where they were.
// Each group of adjacent text children is rewritten with its share of the
// new text; the changed span goes to the group where the change starts.
func (r *Run) writeChildren(buf *bytes.Buffer) {
	data := r.part.data
	if r.text == r.origText {
		for _, c := range r.children {
			buf.Write(data[c.start:c.end])
		}
		return
	}
	last := 0
	for i, c := range r.children {
		if c.kind == childText {
			last = i + 1
		}
	}
	if last == 0 {
		writeText(buf, r.prefix, r.text)
		for _, c := range r.children {
			buf.Write(data[c.start:c.end])
		}
		return
	}

	e := newEdit(r.origText, r.text)
	pos, from := 0, 0
	for i := 0; i < len(r.children); {
		if r.children[i].kind == childRaw {
			buf.Write(data[r.children[i].start:r.children[i].end])
			i++
			continue
		}
		j, end := i, pos
		for ; j < len(r.children) && r.children[j].kind == childText; j++ {
			end += len(r.children[j].text)
		}
		to := e.at(end)
		if j == last {
			to = len(r.text)
		}
		if seg := r.text[from:to]; seg == r.origText[pos:end] {
			buf.Write(data[r.children[i].start:r.children[j-1].end])
		} else {
			writeText(buf, r.prefix, seg)
		}
		i, pos, from = j, end, to
	}
}

// edit describes a text change as a common prefix and suffix around one
// replaced span.
type edit struct {
	oldLen, newLen int
	prefix, suffix int
}

func newEdit(before, after string) edit {
	e := edit{oldLen: len(before), newLen: len(after)}
	n := min(len(before), len(after))
	for e.prefix < n && before[e.prefix] == after[e.prefix] {
		e.prefix++
	}
	for e.prefix > 0 && !(runeStart(before, e.prefix) && runeStart(after, e.prefix)) {
		e.prefix--
	}
	for e.suffix < n-e.prefix && before[len(before)-1-e.suffix] == after[len(after)-1-e.suffix] {
		e.suffix++
	}
	for e.suffix > 0 && !(runeStart(before, len(before)-e.suffix) && runeStart(after, len(after)-e.suffix)) {
		e.suffix--
	}
	return e
}

// at maps an offset in the old text to the new text. Offsets inside the
// replaced span map to its end.
func (e edit) at(off int) int {
	switch {
	case off <= e.prefix:
		return off
	case off >= e.oldLen-e.suffix:
		return off + e.newLen - e.oldLen
	default:
		return e.newLen - e.suffix
	}
}

func runeStart(s string, i int) bool {
	return i >= len(s) || utf8.RuneStart(s[i])
}

// writeText emits text as w:t elements, turning newlines into w:br and tabs
// into w:tab.
func writeText(buf *bytes.Buffer, prefix, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			buf.WriteString("<" + qualify(prefix, "br") + "/>")
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				buf.WriteString("<" + qualify(prefix, "tab") + "/>")
			}
			if seg == "" {
				continue
			}
			buf.WriteString("<" + qualify(prefix, "t") + ` xml:space="preserve">`)
			_ = xml.EscapeText(buf, []byte(seg))
			buf.WriteString("</" + qualify(prefix, "t") + ">")
		}
	}
}
