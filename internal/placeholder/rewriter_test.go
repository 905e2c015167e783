package placeholder

import (
	"testing"

	"cv-customizer/internal/adapter/memdoc"
	"cv-customizer/internal/domain"
	"cv-customizer/internal/model"
)

var (
	bold  = domain.Style{Bold: domain.On, FontName: "Arial", FontSize: 11, Color: "1F3864"}
	plain = domain.Style{FontName: "Arial", FontSize: 11}
)

func TestApply_SingleFragment(t *testing.T) {
	p := memdoc.P(memdoc.Styled("Role: {{job_title}}", bold), memdoc.Styled(" (remote)", plain))
	n := Apply(p, "job_title", "Engineer")
	if n != 1 {
		t.Fatalf("Apply() = %d, want 1", n)
	}
	if got := p.Runs[0].Value; got != "Role: Engineer" {
		t.Errorf("fragment text = %q", got)
	}
	if p.Runs[0].Fmt != bold || p.Runs[1].Fmt != plain {
		t.Error("styles changed on the single fragment path")
	}
	if p.Runs[1].Value != " (remote)" {
		t.Errorf("neighbouring fragment changed to %q", p.Runs[1].Value)
	}
}

func TestApply_SpansFragments(t *testing.T) {
	p := memdoc.P(memdoc.Styled("Role: {{job_", bold), memdoc.Styled("title}}", plain))
	n := Apply(p, "job_title", "Engineer")
	if n != 1 {
		t.Fatalf("Apply() = %d, want 1", n)
	}
	if p.Runs[0].Value != "Role: Engineer" {
		t.Errorf("merged text = %q", p.Runs[0].Value)
	}
	if p.Runs[0].Fmt.Bold != domain.On {
		t.Error("merged fragment lost bold")
	}
	if p.Runs[0].Fmt != bold {
		t.Errorf("merged style = %+v, want %+v", p.Runs[0].Fmt, bold)
	}
	if p.Runs[1].Value != "" {
		t.Errorf("second fragment = %q, want empty", p.Runs[1].Value)
	}
}

func TestApply_SpansManyFragments(t *testing.T) {
	runs := []*memdoc.Run{
		memdoc.Styled("Contact: {", bold),
		memdoc.Styled("{contact", plain),
		memdoc.Styled("_email", domain.Style{Italic: domain.On}),
		memdoc.Styled("}} today", plain),
	}
	p := memdoc.P(runs...)
	Apply(p, "contact_email", "dev@example.com")

	nonEmpty := 0
	for _, r := range p.Runs {
		if r.Value != "" {
			nonEmpty++
		}
	}
	if nonEmpty != 1 {
		t.Errorf("non-empty fragments = %d, want 1", nonEmpty)
	}
	if p.Runs[0].Value != "Contact: dev@example.com today" {
		t.Errorf("merged text = %q", p.Runs[0].Value)
	}
	if p.Runs[0].Fmt != bold {
		t.Errorf("surviving style = %+v, want the first fragment's", p.Runs[0].Fmt)
	}
}

func TestApply_RepeatedToken(t *testing.T) {
	p := memdoc.P(memdoc.R("{{x}} and {{"), memdoc.R("x}} and {{x}}"))
	n := Apply(p, "x", "1")
	if n != 3 {
		t.Fatalf("Apply() = %d, want 3", n)
	}
	if got := p.Text(); got != "1 and 1 and 1" {
		t.Errorf("text = %q", got)
	}
}

func TestApply_ValueContainingToken(t *testing.T) {
	p := memdoc.P(memdoc.R("a {{x}} b {{x}}"))
	n := Apply(p, "x", "[{{x}}]")
	if n != 2 {
		t.Fatalf("Apply() = %d, want 2", n)
	}
	if got := p.Text(); got != "a [[{{x}}]] b {{x}}" {
		t.Errorf("text = %q", got)
	}
}

func TestApply_Absent(t *testing.T) {
	p := memdoc.P(memdoc.Styled("Nothing here", bold))
	if n := Apply(p, "job_title", "Engineer"); n != 0 {
		t.Errorf("Apply() = %d, want 0", n)
	}
	if p.Runs[0].Value != "Nothing here" || p.Runs[0].Fmt != bold {
		t.Error("paragraph changed")
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		value model.Value
		want  string
	}{
		{"text", model.Text("Engineer"), "Engineer"},
		{"empty text", model.Text(""), ""},
		{"empty list", model.List(), ""},
		{"one item", model.List("Go"), "• Go"},
		{"skills", model.List("Python", "Go", "Rust"), "• Python\n• Go\n• Rust"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.value); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
