// Package style holds the inline sequences used to mark reading and match runs.
package style

// Styles is a table of the sequences that open and close styled runs.
// ReadingOff must cancel ReadingOn without cancelling HighlightOn, so a
// reading can sit inside a highlighted match.
type Styles struct {
	ReadingOn    string
	ReadingOff   string
	HighlightOn  string
	HighlightOff string
}

// ANSI renders readings underlined and matches in green.
var ANSI = Styles{
	ReadingOn:    "\x1b[4m",
	ReadingOff:   "\x1b[24m",
	HighlightOn:  "\x1b[32m",
	HighlightOff: "\x1b[0m",
}

// Brackets is for output that is not a terminal: readings use the Aozora
// ruby brackets and matches lenticular brackets.
var Brackets = Styles{
	ReadingOn:    "《",
	ReadingOff:   "》",
	HighlightOn:  "【",
	HighlightOff: "】",
}

// Reading wraps text as a reading run.
func (s Styles) Reading(text string) string {
	return s.ReadingOn + text + s.ReadingOff
}

// Highlight wraps text as a match run.
func (s Styles) Highlight(text string) string {
	return s.HighlightOn + text + s.HighlightOff
}
