package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestMapping_UnmarshalJSON(t *testing.T) {
	data := `{"job_title": "Engineer", "skills": ["Python", "Go", 3], "years_experience": 5,
		"remote": true, "notes": null, "company_name": "TechCorp", "ratio": 1.50}`
	var m Mapping
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	wantKeys := []string{"job_title", "skills", "years_experience", "remote", "notes", "company_name", "ratio"}
	if got := m.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("Keys() = %q, want %q", got, wantKeys)
	}

	tests := []struct {
		key  string
		want Value
	}{
		{"job_title", Text("Engineer")},
		{"skills", List("Python", "Go", "3")},
		{"years_experience", Text("5")},
		{"remote", Text("true")},
		{"notes", Text("")},
		{"ratio", Text("1.50")},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := m.Get(tt.key)
			if !ok {
				t.Fatalf("key %q missing", tt.key)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get(%q) = %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestMapping_Field(t *testing.T) {
	m := NewMapping()
	m.Set("company_name", Text("TechCorp"))
	m.Set("skills", List("Go"))
	if m.Field("company_name") != "TechCorp" {
		t.Errorf("Field(company_name) = %q", m.Field("company_name"))
	}
	if m.Field("skills") != "" || m.Field("missing") != "" {
		t.Error("Field should be empty for lists and missing keys")
	}
}

func TestMapping_SetKeepsFirstPosition(t *testing.T) {
	m := NewMapping()
	m.Set("a", Text("1"))
	m.Set("b", Text("2"))
	m.Set("a", Text("3"))
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %q", got)
	}
	if v, _ := m.Get("a"); v.Text != "3" {
		t.Errorf("a = %q, want 3", v.Text)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d", m.Len())
	}
}

func TestMapping_MarshalJSON(t *testing.T) {
	m := NewMapping()
	m.Set("z", Text("last"))
	m.Set("a", List("x", "y"))
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"z":"last","a":["x","y"]}` {
		t.Errorf("Marshal() = %s", b)
	}
}

func TestMapping_UnmarshalJSON_NotObject(t *testing.T) {
	var m Mapping
	if err := json.Unmarshal([]byte(`["a"]`), &m); err == nil {
		t.Error("expected error for array record")
	}
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"valid", `{"company_name": "TechCorp", "job_title": "Dev", "skills": ["Go"]}`, ""},
		{"empty object", `{}`, ""},
		{"nested object", `{"company_name": "TechCorp", "address": {"city": "Berlin"}}`, "schema validation failed"},
		{"nested list", `{"skills": [["Go"]]}`, "schema validation failed"},
		{"non-string company", `{"company_name": 42}`, "schema validation failed"},
		{"not json", `{"company_name":`, "not valid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseRecord([]byte(tt.data))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ParseRecord() error = %v", err)
				}
				if m == nil {
					t.Fatal("nil mapping")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseRecord() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
