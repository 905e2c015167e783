package docx

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strconv"
	"strings"

	"cv-customizer/internal/domain"
)

// rPrOrder is the element sequence of CT_RPr. Regenerated properties are
// placed by it so the output stays schema-valid.
var rPrOrder = []string{
	"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike",
	"dstrike", "outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid",
	"vanish", "webHidden", "color", "spacing", "w", "kern", "position", "sz",
	"szCs", "highlight", "u", "effect", "bdr", "shd", "fitText", "vertAlign",
	"rtl", "cs", "em", "lang", "eastAsianLayout", "specVanish", "oMath", "rPrChange",
}

var rPrRank = func() map[string]int {
	m := make(map[string]int, len(rPrOrder))
	for i, name := range rPrOrder {
		m[name] = i
	}
	return m
}()

// managed lists the properties mapped onto domain.Style.
var managed = []string{"rFonts", "b", "i", "color", "sz", "u"}

func isManaged(local string) bool {
	for _, m := range managed {
		if m == local {
			return true
		}
	}
	return false
}

type propChild struct {
	local      string // empty for elements outside the main namespace
	start, end int64
	managed    bool
}

type runProps struct {
	start, end int64
	children   []propChild
	style      domain.Style
	underline  string // original w:u/@w:val
}

func (p *parser) runProps(start int64) (*runProps, error) {
	rp := &runProps{start: start}
	for {
		tok, off, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			c := propChild{start: off}
			if t.Name.Space == wordNS {
				c.local = t.Name.Local
				c.managed = isManaged(c.local)
				rp.read(t)
			}
			if err := p.d.Skip(); err != nil {
				return nil, err
			}
			c.end = p.d.InputOffset()
			rp.children = append(rp.children, c)
		case xml.EndElement:
			rp.end = p.d.InputOffset()
			return rp, nil
		}
	}
}

func (rp *runProps) read(se xml.StartElement) {
	val := attr(se, wordNS, "val")
	switch se.Name.Local {
	case "b":
		rp.style.Bold = toggle(val)
	case "i":
		rp.style.Italic = toggle(val)
	case "u":
		rp.underline = val
		if val == "none" {
			rp.style.Underline = domain.Off
		} else {
			rp.style.Underline = domain.On
		}
	case "rFonts":
		for _, a := range []string{"ascii", "hAnsi", "cs", "eastAsia"} {
			if name := attr(se, wordNS, a); name != "" {
				rp.style.FontName = name
				break
			}
		}
	case "sz":
		if half, err := strconv.ParseFloat(val, 64); err == nil {
			rp.style.FontSize = half / 2
		}
	case "color":
		rp.style.Color = val
	}
}

func toggle(val string) domain.Toggle {
	switch strings.ToLower(val) {
	case "0", "false", "off":
		return domain.Off
	default:
		return domain.On
	}
}

// writeProps emits the run properties for the current style. Properties
// the style does not cover, and managed ones whose value did not change, are
// copied from the source.
func (r *Run) writeProps(buf *bytes.Buffer) {
	data := r.part.data
	if r.style == r.origStyle {
		if r.props != nil {
			buf.Write(data[r.props.start:r.props.end])
		}
		return
	}

	type element struct {
		rank int
		raw  []byte
	}
	var els []element
	kept := map[string]bool{}
	rank := -1
	if r.props != nil {
		for _, c := range r.props.children {
			if rk, ok := rPrRank[c.local]; ok {
				rank = rk
			}
			if c.managed && (kept[c.local] || !r.sameProp(c.local)) {
				continue
			}
			if c.managed {
				kept[c.local] = true
			}
			els = append(els, element{rank, data[c.start:c.end]})
		}
	}
	for _, name := range managed {
		if kept[name] {
			continue
		}
		if raw := r.genProp(name); raw != "" {
			els = append(els, element{rPrRank[name], []byte(raw)})
		}
	}
	if len(els) == 0 {
		return
	}
	sort.SliceStable(els, func(i, j int) bool { return els[i].rank < els[j].rank })

	buf.WriteString("<" + r.name("rPr") + ">")
	for _, el := range els {
		buf.Write(el.raw)
	}
	buf.WriteString("</" + r.name("rPr") + ">")
}

func (r *Run) sameProp(local string) bool {
	a, b := r.style, r.origStyle
	switch local {
	case "b":
		return a.Bold == b.Bold
	case "i":
		return a.Italic == b.Italic
	case "u":
		return a.Underline == b.Underline
	case "rFonts":
		return a.FontName == b.FontName
	case "sz":
		return a.FontSize == b.FontSize
	case "color":
		return a.Color == b.Color
	}
	return false
}

func (r *Run) genProp(local string) string {
	s := r.style
	el := func(val string) string {
		if val == "" {
			return "<" + r.name(local) + "/>"
		}
		return "<" + r.name(local) + " " + r.name("val") + `="` + escapeAttr(val) + `"/>`
	}
	switch local {
	case "b", "i":
		t := s.Bold
		if local == "i" {
			t = s.Italic
		}
		switch t {
		case domain.On:
			return el("")
		case domain.Off:
			return el("0")
		}
	case "u":
		switch s.Underline {
		case domain.On:
			if r.props != nil && r.props.underline != "" && r.props.underline != "none" {
				return el(r.props.underline)
			}
			return el("single")
		case domain.Off:
			return el("none")
		}
	case "rFonts":
		if s.FontName != "" {
			name := escapeAttr(s.FontName)
			return "<" + r.name("rFonts") + " " + r.name("ascii") + `="` + name + `" ` +
				r.name("hAnsi") + `="` + name + `"/>`
		}
	case "sz":
		if s.FontSize > 0 {
			return el(strconv.FormatFloat(s.FontSize*2, 'f', -1, 64))
		}
	case "color":
		if s.Color != "" {
			return el(s.Color)
		}
	}
	return ""
}

func escapeAttr(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
