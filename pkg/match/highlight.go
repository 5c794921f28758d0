package match

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/japaniel/yourei/pkg/kana"
	"github.com/japaniel/yourei/pkg/style"
)

// Tier tells which matcher produced a highlight.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierSkeleton
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierSkeleton:
		return "skeleton"
	default:
		return "none"
	}
}

// Policy selects how many matches of the winning matcher are highlighted.
type Policy int

const (
	// AllMatches highlights every non-overlapping match.
	AllMatches Policy = iota
	// FirstMatch highlights only the leftmost match.
	FirstMatch
)

// Inflector decides how much of the kana right after a skeleton match still
// belongs to the matched word. stem is the matched text with readings
// removed, tail the kana run that follows it. The result is a byte length
// into tail.
type Inflector interface {
	InflectionLen(stem, tail string) int
}

// InflectorFunc adapts a function to the Inflector interface.
type InflectorFunc func(stem, tail string) int

func (f InflectorFunc) InflectionLen(stem, tail string) int { return f(stem, tail) }

// Highlighter wraps occurrences of the query word in the highlight style.
type Highlighter struct {
	Matchers *Matchers
	Styles   style.Styles
	Policy   Policy
	// Inflector extends skeleton matches over their okurigana. With no
	// Inflector a skeleton match ends at its last kanji.
	Inflector Inflector
}

// NewHighlighter returns a Highlighter using the AllMatches policy.
func NewHighlighter(m *Matchers, st style.Styles) *Highlighter {
	return &Highlighter{Matchers: m, Styles: st}
}

// Highlight applies the exact matcher to text and falls back to the skeleton
// matcher only when the exact one finds nothing. The fallback decision is made
// once per text, not per occurrence.
func (h *Highlighter) Highlight(text string) (string, Tier) {
	if out, ok := h.apply(h.Matchers.Exact, text, false); ok {
		return out, TierExact
	}
	if h.Matchers.Skeleton != nil {
		if out, ok := h.apply(h.Matchers.Skeleton, text, h.Inflector != nil); ok {
			return out, TierSkeleton
		}
	}
	return text, TierNone
}

func (h *Highlighter) apply(re *regexp.Regexp, text string, inflect bool) (string, bool) {
	n := -1
	if h.Policy == FirstMatch {
		n = 1
	}
	matches := re.FindAllStringSubmatchIndex(text, n)
	if len(matches) == 0 {
		return text, false
	}

	g := re.SubexpIndex(group)
	var b strings.Builder
	last := 0
	for i, m := range matches {
		start, end := m[2*g], m[2*g+1]
		if inflect {
			limit := len(text)
			if i+1 < len(matches) {
				limit = matches[i+1][0]
			}
			end = h.inflect(text, start, end, limit)
		}
		b.WriteString(text[last:start])
		b.WriteString(h.Styles.Highlight(text[start:end]))
		last = end
	}
	b.WriteString(text[last:])
	return b.String(), true
}

// inflect returns the new end of the match text[start:end] after handing the
// kana run that follows it, up to limit, to the Inflector.
func (h *Highlighter) inflect(text string, start, end, limit int) int {
	tail := end
	for tail < limit {
		r, size := utf8.DecodeRuneInString(text[tail:])
		if !kana.IsKana(r) {
			break
		}
		tail += size
	}
	if tail == end {
		return end
	}
	n := h.Inflector.InflectionLen(h.Matchers.stripReadings(text[start:end]), text[end:tail])
	if n <= 0 {
		return end
	}
	if n > tail-end {
		n = tail - end
	}
	return end + n
}
