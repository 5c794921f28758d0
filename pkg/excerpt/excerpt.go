// Package excerpt assembles example sentences for display.
package excerpt

import (
	"log"

	"github.com/japaniel/yourei/pkg/match"
	"github.com/japaniel/yourei/pkg/ruby"
)

// Excerpt is one example from the result list. A nil field is absent.
type Excerpt struct {
	Prev     *string
	Sentence *string
	Next     *string
	Source   *string
}

// String joins prev, sentence and next without separators and appends the
// source on its own line when present.
func (e Excerpt) String() string {
	text := deref(e.Prev) + deref(e.Sentence) + deref(e.Next)
	if e.Source != nil {
		return text + "\n" + *e.Source
	}
	return text
}

// Map returns a copy of e with f applied to every present field.
func (e Excerpt) Map(f func(string) string) Excerpt {
	return Excerpt{
		Prev:     mapField(e.Prev, f),
		Sentence: mapField(e.Sentence, f),
		Next:     mapField(e.Next, f),
		Source:   mapField(e.Source, f),
	}
}

func mapField(s *string, f func(string) string) *string {
	if s == nil {
		return nil
	}
	v := f(*s)
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Formatter renders excerpts for one run.
type Formatter struct {
	Normalizer ruby.Normalizer
	// Highlighter is used only when Emphasize is set.
	Highlighter *match.Highlighter
	Emphasize   bool
	// Logger reports which matcher highlighted each field. nil means no logging.
	Logger *log.Logger
}

// Apply normalizes every present field and then, if emphasis is on,
// highlights it. Highlighting must come second: the matchers expect reading
// runs, not raw markup.
func (f *Formatter) Apply(e Excerpt) Excerpt {
	e = e.Map(f.Normalizer.Normalize)
	if !f.Emphasize || f.Highlighter == nil {
		return e
	}
	return e.Map(func(s string) string {
		out, tier := f.Highlighter.Highlight(s)
		if f.Logger != nil && tier != match.TierNone {
			f.Logger.Printf("highlighted %s match in %q", tier, s)
		}
		return out
	})
}

// Format returns the display text of e.
func (f *Formatter) Format(e Excerpt) string {
	return f.Apply(e).String()
}
