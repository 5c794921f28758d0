// Package ruby flattens HTML ruby annotations into inline text.
package ruby

import (
	"log"
	"regexp"
	"strings"

	"github.com/japaniel/yourei/pkg/style"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

var (
	// An <rp> segment may span lines.
	reRP      = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
	reOpenRT  = regexp.MustCompile(`(?i)<rt\b[^>]*>`)
	reCloseRT = regexp.MustCompile(`(?i)</rt\s*>`)
	reTag     = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
)

// Normalizer turns one raw excerpt field into display text.
type Normalizer struct {
	Styles style.Styles
	// Furigana keeps each reading as an inline Styles.Reading run right after
	// the base text it annotates. When false readings are dropped.
	Furigana bool
	// Logger reports unterminated <rt> segments. nil means no logging.
	Logger *log.Logger
}

// Normalize removes ruby wrappers and fallback parentheses, renders or drops
// every <rt> reading, strips any other markup and decodes character
// references. The result is NFC and holds no markup.
//
// An <rt> with no matching </rt> before the next <rt> or the end of the field
// is treated as literal text: the marker goes, its content stays unstyled.
func (n Normalizer) Normalize(field string) string {
	field = reRP.ReplaceAllString(field, "")

	var b strings.Builder
	for {
		open := reOpenRT.FindStringIndex(field)
		if open == nil {
			break
		}
		b.WriteString(plain(field[:open[0]]))
		rest := field[open[1]:]

		end := reCloseRT.FindStringIndex(rest)
		next := reOpenRT.FindStringIndex(rest)
		if end == nil || (next != nil && next[0] < end[0]) {
			if n.Logger != nil {
				n.Logger.Printf("unterminated reading annotation: %q", field[open[0]:])
			}
			field = rest
			continue
		}

		if reading := plain(rest[:end[0]]); n.Furigana && reading != "" {
			b.WriteString(n.Styles.Reading(reading))
		}
		field = rest[end[1]:]
	}
	b.WriteString(plain(field))

	return norm.NFC.String(b.String())
}

// plain strips tags from s and decodes its character references.
func plain(s string) string {
	return html.UnescapeString(reTag.ReplaceAllString(s, ""))
}
