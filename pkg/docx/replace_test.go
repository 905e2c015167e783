package docx

import (
	"bytes"
	"testing"

	"cv-customizer/internal/domain"
	"cv-customizer/internal/model"
	"cv-customizer/internal/placeholder"
)

func TestReplaceAll_Package(t *testing.T) {
	d := openTest(t)
	m := model.NewMapping()
	m.Set("name", model.Text("Ada"))
	m.Set("cell", model.List("Go", "Rust"))
	m.Set("h", model.Text("CV"))

	rep := placeholder.NewReplacer(nil).ReplaceAll(d, m)
	if rep.Total() != 3 {
		t.Fatalf("Total() = %d, want 3", rep.Total())
	}

	out, data := reopen(t, d)
	if got := readEntries(t, data)["word/footer1.xml"]; got != testFooter {
		t.Error("footer without placeholders was rewritten")
	}

	runs := firstRuns(out)
	if runs[0].Text() != "Hello Ada" || runs[1].Text() != "" {
		t.Errorf("runs = %q, %q", runs[0].Text(), runs[1].Text())
	}
	if s := runs[0].Style(); s.Bold != domain.On || s.Color != "FF0000" {
		t.Errorf("merged run style = %+v", s)
	}
	cell := out.main.story.tables[0].rows[0].cells[0]
	if got := cell.paragraphs[0].Text(); got != "• Go\n• Rust" {
		t.Errorf("cell = %q", got)
	}
	hdr := out.Sections()[0].Headers()[0]
	if got := domain.ParagraphText(hdr.Paragraphs()[0]); got != "Header CV" {
		t.Errorf("header = %q", got)
	}
	if len(placeholder.FindTokens(out)) != 0 {
		t.Errorf("tokens left: %v", placeholder.FindTokens(out))
	}
}

func TestReplaceAll_Untouched(t *testing.T) {
	d := openTest(t)
	m := model.NewMapping()
	m.Set("absent", model.Text("x"))
	placeholder.NewReplacer(nil).ReplaceAll(d, m)
	if d.Modified() {
		t.Fatal("document modified without matching keys")
	}
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := readEntries(t, buf.Bytes())["word/document.xml"]; got != testDocument {
		t.Error("document part changed")
	}
}
