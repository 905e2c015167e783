package placeholder

import (
	"encoding/json"
	"reflect"
	"testing"

	"cv-customizer/internal/adapter/memdoc"
	"cv-customizer/internal/domain"
	"cv-customizer/internal/model"
)

func sampleDoc() *memdoc.Document {
	header := memdoc.S(memdoc.P(memdoc.Styled("{{company_name}} | {{job_", bold), memdoc.R("title}}")))
	footer := memdoc.S(memdoc.P(memdoc.R("{{contact_email}}")))
	nested := memdoc.S(memdoc.P(memdoc.R("Since {{years_experience}} years")))
	cell := memdoc.S(memdoc.P(memdoc.R("{{location}}")))
	cell.Tbls = []*memdoc.Table{memdoc.T([]*memdoc.Story{nested})}

	body := memdoc.S(
		memdoc.P(memdoc.Styled("Role: {{job_title}}", bold)),
		memdoc.P(memdoc.R("Skills:")),
		memdoc.P(memdoc.R("{{skills}}")),
		memdoc.P(memdoc.R("Keep {{unknown}} as is")),
	)
	body.Tbls = []*memdoc.Table{memdoc.T([]*memdoc.Story{cell, memdoc.S(memdoc.P(memdoc.R("static")))})}

	shared := &memdoc.Section{Hdrs: []*memdoc.Story{header}, Ftrs: []*memdoc.Story{footer}}
	second := &memdoc.Section{Hdrs: []*memdoc.Story{header}}
	return memdoc.New(body, shared, second)
}

func sampleMapping() *model.Mapping {
	m := model.NewMapping()
	m.Set("job_title", model.Text("Engineer"))
	m.Set("company_name", model.Text("TechCorp"))
	m.Set("skills", model.List("Python", "Go", "Rust"))
	m.Set("location", model.Text("Remote"))
	m.Set("years_experience", model.Text("5"))
	m.Set("contact_email", model.Text("dev@example.com"))
	m.Set("education_focus", model.Text("unused"))
	return m
}

func texts(doc domain.Document) []string {
	var out []string
	Walk(doc, func(p domain.Paragraph) {
		out = append(out, domain.ParagraphText(p))
	})
	return out
}

func TestReplaceAll(t *testing.T) {
	doc := sampleDoc()
	rep := NewReplacer(nil).ReplaceAll(doc, sampleMapping())

	want := []string{
		"Role: Engineer",
		"Skills:",
		"• Python\n• Go\n• Rust",
		"Keep {{unknown}} as is",
		"Remote",
		"Since 5 years",
		"static",
		"TechCorp | Engineer",
		"dev@example.com",
	}
	if got := texts(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("texts =\n%q\nwant\n%q", got, want)
	}
	if rep.Paragraphs != len(want) {
		t.Errorf("Paragraphs = %d, want %d", rep.Paragraphs, len(want))
	}
	if rep.Replaced["job_title"] != 2 {
		t.Errorf("job_title replaced %d times, want 2", rep.Replaced["job_title"])
	}
	if _, ok := rep.Replaced["education_focus"]; ok {
		t.Error("absent key reported as replaced")
	}
	if rep.Total() != 7 {
		t.Errorf("Total() = %d, want 7", rep.Total())
	}
	if !reflect.DeepEqual(rep.Unresolved, []string{"{{unknown}}"}) {
		t.Errorf("Unresolved = %q", rep.Unresolved)
	}

	// shared header is rewritten once and keeps the first fragment's style
	hdr := doc.Secs[0].Hdrs[0].Paras[0]
	if hdr.Runs[0].Fmt != bold || hdr.Runs[1].Value != "" {
		t.Errorf("header runs = %+v", hdr.Runs)
	}
}

func snapshot(t *testing.T, doc *memdoc.Document) string {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestReplaceAll_NoMatchingKeys(t *testing.T) {
	doc := sampleDoc()
	before := snapshot(t, doc)

	m := model.NewMapping()
	m.Set("not_in_template", model.Text("x"))
	m.Set("also_missing", model.List("a", "b"))
	rep := NewReplacer(nil).ReplaceAll(doc, m)

	if after := snapshot(t, doc); after != before {
		t.Errorf("document changed:\nbefore %s\nafter  %s", before, after)
	}
	if rep.Total() != 0 {
		t.Errorf("Total() = %d, want 0", rep.Total())
	}
}

func TestReplaceAll_OrderIndependent(t *testing.T) {
	forward := sampleMapping()
	reverse := model.NewMapping()
	keys := forward.Keys()
	for i := len(keys) - 1; i >= 0; i-- {
		v, _ := forward.Get(keys[i])
		reverse.Set(keys[i], v)
	}

	a, b := sampleDoc(), sampleDoc()
	NewReplacer(nil).ReplaceAll(a, forward)
	NewReplacer(nil).ReplaceAll(b, reverse)
	if snapshot(t, a) != snapshot(t, b) {
		t.Error("result depends on key order")
	}
}

func TestReplaceAll_EmptyList(t *testing.T) {
	doc := memdoc.New(memdoc.S(memdoc.P(memdoc.R("Skills: {{skills}}"))))
	m := model.NewMapping()
	m.Set("skills", model.List())
	NewReplacer(nil).ReplaceAll(doc, m)
	if got := doc.Main.Paras[0].Text(); got != "Skills: " {
		t.Errorf("text = %q, want %q", got, "Skills: ")
	}
}

func TestWalk_SkipsNilAndSharedStories(t *testing.T) {
	h := memdoc.S(memdoc.P(memdoc.R("h")))
	doc := memdoc.New(nil,
		&memdoc.Section{Hdrs: []*memdoc.Story{h}, Ftrs: []*memdoc.Story{h}},
		&memdoc.Section{Hdrs: []*memdoc.Story{h}},
	)
	if got := texts(doc); !reflect.DeepEqual(got, []string{"h"}) {
		t.Errorf("visited %q, want [h]", got)
	}
}

func TestInspect(t *testing.T) {
	occ := Inspect(sampleDoc())
	kinds := map[string]Kind{}
	for _, o := range occ {
		if _, ok := kinds[o.Token]; !ok {
			kinds[o.Token] = o.Match.Kind
		}
	}
	if kinds["{{job_title}}"] != SingleFragment {
		t.Errorf("{{job_title}} = %v, want single (body occurrence is seen first)", kinds["{{job_title}}"])
	}
	last := occ[len(occ)-1]
	if last.Token != "{{contact_email}}" {
		t.Errorf("last occurrence = %q", last.Token)
	}
	var spans int
	for _, o := range occ {
		if o.Match.Kind == SpansFragments {
			spans++
		}
	}
	if spans != 1 {
		t.Errorf("split occurrences = %d, want 1", spans)
	}
}
