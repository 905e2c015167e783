package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	minimalContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

	minimalRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`
)

// Line is one paragraph of a generated document. Bold lines are used for
// headings.
type Line struct {
	Text string
	Bold bool
}

// WriteMinimal writes a bare .docx with one paragraph per line.
func WriteMinimal(w io.Writer, lines []Line) error {
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	body.WriteString(`<w:document xmlns:w="` + wordNS + `" xmlns:r="` + relNS + `"><w:body>`)
	for _, l := range lines {
		body.WriteString("<w:p>")
		if l.Text != "" {
			body.WriteString("<w:r>")
			if l.Bold {
				body.WriteString("<w:rPr><w:b/></w:rPr>")
			}
			writeText(&body, "w", l.Text)
			body.WriteString("</w:r>")
		}
		body.WriteString("</w:p>")
	}
	body.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`)

	zw := zip.NewWriter(w)
	for _, e := range []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(minimalContentTypes)},
		{"_rels/.rels", []byte(minimalRels)},
		{mainPart, body.Bytes()},
	} {
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", e.name, err)
		}
		if _, err := f.Write(e.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.name, err)
		}
	}
	return zw.Close()
}

// CreateMinimal writes a bare .docx to filePath.
func CreateMinimal(filePath string, lines []Line) error {
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	if err := WriteMinimal(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PlainText returns the document text with one line per body paragraph.
func (d *Document) PlainText() string {
	var b strings.Builder
	for _, p := range d.main.story.paragraphs {
		b.WriteString(p.Text())
		b.WriteByte('\n')
	}
	return b.String()
}
