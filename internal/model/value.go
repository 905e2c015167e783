package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value is a replacement value: a single text, or an ordered list of items
// that is rendered as a bullet list.
type Value struct {
	Text   string
	Items  []string
	IsList bool
}

func Text(s string) Value { return Value{Text: s} }

func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Items: items, IsList: true}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if arr, ok := raw.([]interface{}); ok {
		items := make([]string, 0, len(arr))
		for _, it := range arr {
			items = append(items, stringify(it))
		}
		*v = List(items...)
		return nil
	}
	*v = Text(stringify(raw))
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList {
		return json.Marshal(v.Items)
	}
	return json.Marshal(v.Text)
}

func stringify(x interface{}) string {
	switch t := x.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// Mapping is an insertion-ordered key to value map. JSON objects decode in
// document order.
type Mapping struct {
	keys   []string
	values map[string]Value
}

func NewMapping() *Mapping {
	return &Mapping{values: map[string]Value{}}
}

func (m *Mapping) Set(key string, v Value) {
	if m.values == nil {
		m.values = map[string]Value{}
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Mapping) Len() int { return len(m.keys) }

// Field returns the text of key, or "" when the key is missing or holds a list.
func (m *Mapping) Field(key string) string {
	v, ok := m.values[key]
	if !ok || v.IsList {
		return ""
	}
	return v.Text
}

func (m *Mapping) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("job record must be a JSON object")
	}
	out := NewMapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var v Value
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = *out
	return nil
}

func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String lists keys in order; values are elided.
func (m *Mapping) String() string {
	return "{" + strings.Join(m.keys, ", ") + "}"
}
