package yourei

import (
	"fmt"
	"io"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"

	"github.com/japaniel/yourei/pkg/excerpt"
)

var (
	selItem     = cascadia.MustCompile(`ul.sentence-list > [id^="sentence-"]`)
	selPrev     = cascadia.MustCompile(".prev-sentence")
	selSentence = cascadia.MustCompile(".the-sentence")
	selNext     = cascadia.MustCompile(".next-sentence")
	selSource   = cascadia.MustCompile(".sentence-source-title")
)

// Extract reads a result page and returns its examples in page order. The
// fields hold raw inner HTML, ruby markup included; the source is the first
// text of the citation. Items without a sentence are skipped.
func Extract(r io.Reader) ([]excerpt.Excerpt, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var examples []excerpt.Excerpt
	for _, item := range selItem.MatchAll(doc) {
		sentence := innerHTML(selSentence.MatchFirst(item))
		if sentence == nil {
			continue
		}
		examples = append(examples, excerpt.Excerpt{
			Prev:     innerHTML(selPrev.MatchFirst(item)),
			Sentence: sentence,
			Next:     innerHTML(selNext.MatchFirst(item)),
			Source:   firstText(selSource.MatchFirst(item)),
		})
	}
	return examples, nil
}

func innerHTML(n *html.Node) *string {
	if n == nil {
		return nil
	}
	s := dom.InnerHTML(n)
	return &s
}

// firstText returns the first text node at or below n, escaped again so the
// citation is markup like the fields taken with innerHTML.
func firstText(n *html.Node) *string {
	if n == nil {
		return nil
	}
	if n.Type == html.TextNode {
		s := html.EscapeString(n.Data)
		return &s
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if s := firstText(c); s != nil {
			return s
		}
	}
	return nil
}
