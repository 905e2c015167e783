// Package placeholder substitutes {{key}} tokens in paragraphs whose text is
// split across independently styled fragments.
package placeholder

import (
	"strings"

	"cv-customizer/internal/domain"
)

type Kind int

const (
	NotPresent Kind = iota
	SingleFragment
	SpansFragments
)

func (k Kind) String() string {
	switch k {
	case SingleFragment:
		return "single"
	case SpansFragments:
		return "spans"
	default:
		return "absent"
	}
}

// Match is the result of locating a token in a paragraph. For SingleFragment,
// Fragment is the index of the fragment holding the token. For SpansFragments,
// First and Last bound the fragments covered by the first occurrence.
type Match struct {
	Kind     Kind
	Fragment int
	First    int
	Last     int
}

// Token wraps key as {{key}}.
func Token(key string) string {
	return "{{" + key + "}}"
}

// Locate reports where token occurs in p. A fragment containing the whole
// token wins over a wider span even when both exist.
func Locate(p domain.Paragraph, token string) Match {
	frags := p.Fragments()
	texts := make([]string, len(frags))
	for i, f := range frags {
		texts[i] = f.Text()
	}
	return locate(texts, token)
}

func locate(texts []string, token string) Match {
	full := strings.Join(texts, "")
	at := strings.Index(full, token)
	if token == "" || at < 0 {
		return Match{Kind: NotPresent, Fragment: -1, First: -1, Last: -1}
	}
	for i, t := range texts {
		if strings.Contains(t, token) {
			return Match{Kind: SingleFragment, Fragment: i, First: i, Last: i}
		}
	}
	first, last := spanOf(texts, at, at+len(token))
	return Match{Kind: SpansFragments, Fragment: -1, First: first, Last: last}
}

// spanOf maps the byte range [start, end) of the concatenated text back to the
// indices of the first and last fragments it touches.
func spanOf(texts []string, start, end int) (int, int) {
	first, last := -1, -1
	off := 0
	for i, t := range texts {
		next := off + len(t)
		if len(t) > 0 {
			if first < 0 && start < next {
				first = i
			}
			if end > off && end <= next {
				last = i
				break
			}
		}
		off = next
	}
	return first, last
}
