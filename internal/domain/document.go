package domain

// Toggle is a tri-state run property: unset (inherited from the paragraph or
// style), explicitly on, or explicitly off.
type Toggle int

const (
	Inherit Toggle = iota
	On
	Off
)

func (t Toggle) String() string {
	switch t {
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "inherit"
	}
}

// Style is the formatting record carried by a fragment.
type Style struct {
	Bold      Toggle
	Italic    Toggle
	Underline Toggle
	FontName  string
	FontSize  float64 // points, 0 means unset
	Color     string  // RRGGBB, "" means unset
}

// Fragment is a contiguous, independently styled span of text (a "run").
type Fragment interface {
	Text() string
	SetText(text string)
	Style() Style
	SetStyle(s Style)
}

// Paragraph is an ordered sequence of fragments. Its visible text is the
// concatenation of its fragment texts.
type Paragraph interface {
	Fragments() []Fragment
}

// Story is a flow of block content: the body, a table cell, a header or a footer.
type Story interface {
	Paragraphs() []Paragraph
	Tables() []Table
	// Blocks returns the paragraphs and tables interleaved in reading order.
	Blocks() []Block
}

// Block is one item of a story. Exactly one of Paragraph and Table is set.
type Block struct {
	Paragraph Paragraph
	Table     Table
}

type Table interface {
	Rows() []Row
}

type Row interface {
	Cells() []Story
}

// Section exposes the header and footer stories a document section refers to.
type Section interface {
	Headers() []Story
	Footers() []Story
}

// Document is the narrow view of a word-processing document that
// substitution and export need.
type Document interface {
	Body() Story
	Sections() []Section
	Save(path string) error
}

// ParagraphText returns the concatenated text of p.
func ParagraphText(p Paragraph) string {
	var n int
	frags := p.Fragments()
	for _, f := range frags {
		n += len(f.Text())
	}
	b := make([]byte, 0, n)
	for _, f := range frags {
		b = append(b, f.Text()...)
	}
	return string(b)
}
