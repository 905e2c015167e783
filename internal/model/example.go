package model

// ExampleLabel names the output of the built-in example run.
const ExampleLabel = "CV_TechCorp_Senior_Python"

// ExampleJob is a complete job record covering every placeholder of the
// starter template.
func ExampleJob() *Mapping {
	m := NewMapping()
	m.Set("job_title", Text("Senior Python Developer"))
	m.Set("company_name", Text("TechCorp Solutions"))
	m.Set("location", Text("San Francisco, CA"))
	m.Set("skills", List("Python", "Django", "PostgreSQL", "Docker", "AWS"))
	m.Set("years_experience", Text("5+"))
	m.Set("experience_highlights", List(
		"Led development of microservices architecture serving 1M+ users",
		"Reduced API response time by 60% through optimization",
		"Mentored team of 4 junior developers",
	))
	m.Set("education_focus", Text("Computer Science"))
	m.Set("contact_email", Text("john.doe@email.com"))
	m.Set("contact_phone", Text("+1-555-0123"))
	return m
}

// StarterTemplate is the paragraph layout of the starter template, one entry
// per paragraph. Headings are upper case.
var StarterTemplate = []string{
	"JOHN DOE",
	"{{job_title}} | {{location}}",
	"Email: {{contact_email}} | Phone: {{contact_phone}}",
	"",
	"OBJECTIVE",
	"Seeking position as {{job_title}} at {{company_name}} where I can utilize my {{years_experience}} years of experience.",
	"",
	"SKILLS",
	"{{skills}}",
	"",
	"EXPERIENCE HIGHLIGHTS",
	"{{experience_highlights}}",
	"",
	"EDUCATION",
	"Bachelor of Science in {{education_focus}}",
}
