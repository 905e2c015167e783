package infrastructure

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strconv"
	"strings"

	"cv-customizer/internal/domain"
)

// The HTML view is a plain projection of the document used by the browser
// fallback: text and run formatting survive, page layout does not.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 18mm; }
body { font-family: "Liberation Sans", Arial, sans-serif; font-size: 11pt; }
p { margin: 0 0 4pt 0; white-space: pre-wrap; min-height: 1em; }
table { border-collapse: collapse; width: 100%; margin: 4pt 0; }
td { vertical-align: top; padding: 2pt 4pt; }
header, footer { color: #444; font-size: 9pt; }
</style>
</head>
<body>
{{range .Headers}}<header>{{template "story" .}}</header>
{{end}}<main>{{template "story" .Body}}</main>
{{range .Footers}}<footer>{{template "story" .}}</footer>
{{end}}</body>
</html>
{{define "story"}}{{range .Blocks}}{{if .IsTable}}<table>{{range .Table}}<tr>{{range .}}<td>{{template "story" .}}</td>{{end}}</tr>{{end}}</table>
{{else}}<p>{{range .Paragraph}}<span{{with .Style}} style="{{.}}"{{end}}>{{.Text}}</span>{{end}}</p>
{{end}}{{end}}{{end}}`))

type viewRun struct {
	Text  string
	Style template.CSS
}

type viewBlock struct {
	IsTable   bool
	Paragraph []viewRun
	Table     [][]viewStory
}

type viewStory struct {
	Blocks []viewBlock
}

type viewPage struct {
	Title   string
	Headers []viewStory
	Body    viewStory
	Footers []viewStory
}

// WriteHTML renders doc as a standalone HTML page.
func WriteHTML(w io.Writer, title string, doc domain.Document) error {
	page := viewPage{Title: title, Body: storyView(doc.Body())}
	seen := map[domain.Story]bool{}
	for _, sec := range doc.Sections() {
		for _, s := range sec.Headers() {
			if !seen[s] {
				seen[s] = true
				page.Headers = append(page.Headers, storyView(s))
			}
		}
		for _, s := range sec.Footers() {
			if !seen[s] {
				seen[s] = true
				page.Footers = append(page.Footers, storyView(s))
			}
		}
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return fmt.Errorf("failed to render html view: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func storyView(s domain.Story) viewStory {
	var v viewStory
	for _, b := range s.Blocks() {
		switch {
		case b.Table != nil:
			var rows [][]viewStory
			for _, r := range b.Table.Rows() {
				var cells []viewStory
				for _, c := range r.Cells() {
					cells = append(cells, storyView(c))
				}
				rows = append(rows, cells)
			}
			v.Blocks = append(v.Blocks, viewBlock{IsTable: true, Table: rows})
		case b.Paragraph != nil:
			var runs []viewRun
			for _, f := range b.Paragraph.Fragments() {
				if f.Text() == "" {
					continue
				}
				runs = append(runs, viewRun{Text: f.Text(), Style: styleCSS(f.Style())})
			}
			v.Blocks = append(v.Blocks, viewBlock{Paragraph: runs})
		}
	}
	return v
}

var (
	hexColor  = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
	fontClean = strings.NewReplacer(`"`, "", `'`, "", ";", "", "<", "", ">", "", "\\", "", "{", "", "}", "")
)

func styleCSS(s domain.Style) template.CSS {
	var decl []string
	switch s.Bold {
	case domain.On:
		decl = append(decl, "font-weight: bold")
	case domain.Off:
		decl = append(decl, "font-weight: normal")
	}
	switch s.Italic {
	case domain.On:
		decl = append(decl, "font-style: italic")
	case domain.Off:
		decl = append(decl, "font-style: normal")
	}
	switch s.Underline {
	case domain.On:
		decl = append(decl, "text-decoration: underline")
	case domain.Off:
		decl = append(decl, "text-decoration: none")
	}
	if name := strings.TrimSpace(fontClean.Replace(s.FontName)); name != "" {
		decl = append(decl, `font-family: "`+name+`", sans-serif`)
	}
	if s.FontSize > 0 {
		decl = append(decl, "font-size: "+strconv.FormatFloat(s.FontSize, 'f', -1, 64)+"pt")
	}
	if hexColor.MatchString(s.Color) {
		decl = append(decl, "color: #"+s.Color)
	}
	return template.CSS(strings.Join(decl, "; "))
}
