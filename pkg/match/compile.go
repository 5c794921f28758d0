// Package match finds a query word inside normalized excerpt text.
//
// Two matchers are built per query. The exact matcher follows the word
// character by character; the skeleton matcher keeps only its kanji and lets
// short kana runs sit between them, so the stem of a conjugated form such as
// 食べた is found for the dictionary form 食べる. Both tolerate a reading run
// (style.Styles.Reading) after any character, which is where the ruby
// normalizer places furigana. How much of the kana after a skeleton match
// belongs to the word is left to an Inflector.
package match

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/japaniel/yourei/pkg/kana"
	"github.com/japaniel/yourei/pkg/style"
	"golang.org/x/text/unicode/norm"
)

// group is the name of the capture holding the matched word.
const group = "word"

// ErrEmptyWord is returned by Compile for an empty query.
var ErrEmptyWord = errors.New("match: empty query word")

// CompileError reports a matcher that could not be built.
type CompileError struct {
	Stage   string
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Stage, e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Matchers holds the compiled matchers for one query word. They are read-only
// after Compile and may be shared.
type Matchers struct {
	Word     string
	Exact    *regexp.Regexp
	Skeleton *regexp.Regexp // nil when Word has no kanji

	reading *regexp.Regexp // one reading run
}

// stripReadings removes reading runs from s.
func (m *Matchers) stripReadings(s string) string {
	if m.reading == nil {
		return s
	}
	return m.reading.ReplaceAllString(s, "")
}

// ExactOnly reports whether there is no skeleton fallback, which is the case
// for kana-only words.
func (m *Matchers) ExactOnly() bool { return m.Skeleton == nil }

// Compile builds the matchers for word against text whose readings were
// rendered with st.
func Compile(word string, st style.Styles) (*Matchers, error) {
	word = norm.NFC.String(word)
	if word == "" {
		return nil, ErrEmptyWord
	}
	var err error
	if st.ReadingOn == "" || st.ReadingOff == "" {
		return nil, &CompileError{Stage: "compile", Err: errors.New("reading style sequences must be non-empty")}
	}

	span := readingSpan(st)
	m := &Matchers{Word: word}
	if m.reading, err = regexp.Compile(strings.TrimSuffix(span, `?`)); err != nil {
		return nil, &CompileError{Stage: "compile", Pattern: span, Err: err}
	}

	var exact strings.Builder
	for _, c := range word {
		exact.WriteString(regexp.QuoteMeta(string(c)))
		exact.WriteString(span)
	}
	if m.Exact, err = compileWord(exact.String()); err != nil {
		return nil, err
	}

	skeleton := kana.Strip(word)
	if skeleton == "" {
		return m, nil
	}
	var sk strings.Builder
	for _, c := range skeleton {
		sk.WriteString(regexp.QuoteMeta(string(c)))
		sk.WriteString(`(?:` + kana.Class + `*?)?`)
		sk.WriteString(span)
	}
	if m.Skeleton, err = compileWord(sk.String()); err != nil {
		return nil, err
	}
	return m, nil
}

// readingSpan matches one optional reading run. The style sequences are
// quoted: the '[' of an ANSI CSI must not open a character class. The reading
// itself may not contain the first rune of ReadingOff, so a span never runs
// on into the next reading.
func readingSpan(st style.Styles) string {
	stop, _ := utf8.DecodeRuneInString(st.ReadingOff)
	reading := `[^` + regexp.QuoteMeta(string(stop)) + `]*?`
	return `(?:` + regexp.QuoteMeta(st.ReadingOn) + reading + regexp.QuoteMeta(st.ReadingOff) + `)?`
}

func compileWord(body string) (*regexp.Regexp, error) {
	pattern := `(?P<` + group + `>` + body + `)`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &CompileError{Stage: "compile", Pattern: pattern, Err: err}
	}
	return re, nil
}
