// Package morph reduces inflected Japanese words to their dictionary form.
package morph

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is a single analyzed unit of a word.
type Token struct {
	Surface       string   // The text as it appears (e.g. "食べ")
	BaseForm      string   // The dictionary form (e.g. "食べる")
	PartsOfSpeech []string // e.g. ["動詞", "自立", "*", "*"] (Kagome POS labels)
}

// Analyzer wraps a kagome tokenizer using the IPA dictionary.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer creates a new tokenizer instance.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Analyze breaks text into tokens with base forms.
func (a *Analyzer) Analyze(text string) []Token {
	var result []Token
	for _, token := range a.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}
		features := token.Features()

		// IPA features: 0-3 POS, 4 conjugation type, 5 conjugation form,
		// 6 base form, 7 reading, 8 pronunciation.
		base := token.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}
		result = append(result, Token{
			Surface:       token.Surface,
			BaseForm:      base,
			PartsOfSpeech: features,
		})
	}
	return result
}

// BaseForm returns the dictionary form of word: trailing auxiliaries
// (た, ます, ない, ...), conjunctive particles (て) and dependent verbs
// (いる in 食べている) are dropped and the last remaining token is replaced by
// its base form. 食べた → 食べる, 勉強した → 勉強する, 猫 → 猫.
func (a *Analyzer) BaseForm(word string) string {
	tokens := a.Analyze(word)
	last := -1
	for i, t := range tokens {
		if !isTrailing(t) {
			last = i
		}
	}
	if last < 0 {
		return word
	}
	var b strings.Builder
	for _, t := range tokens[:last] {
		b.WriteString(t.Surface)
	}
	b.WriteString(tokens[last].BaseForm)
	return b.String()
}

func isTrailing(t Token) bool {
	pos := t.PartsOfSpeech
	if len(pos) == 0 {
		return false
	}
	switch pos[0] {
	case "助動詞":
		return true
	case "助詞":
		return len(pos) > 1 && pos[1] == "接続助詞"
	case "動詞":
		return len(pos) > 1 && pos[1] == "非自立"
	}
	return false
}

// InflectionLen returns how many bytes at the start of tail continue the word
// whose beginning is stem. The token that stem ends in is always completed.
// When that token is a verb or adjective, or a サ変 noun followed by する, the
// auxiliaries, dependent verbs and te-form particles after it are included
// as well. Any other particle or noun ends the word, so 食+べたのですが gives
// べた and 勉強+をしていた gives nothing.
func (a *Analyzer) InflectionLen(stem, tail string) int {
	if stem == "" || tail == "" {
		return 0
	}
	text := stem + tail
	tokens := a.Analyze(text)
	ends := make([]int, len(tokens))
	cursor := 0
	for i, t := range tokens {
		at := strings.Index(text[cursor:], t.Surface)
		if at < 0 {
			return 0
		}
		cursor += at + len(t.Surface)
		ends[i] = cursor
	}

	i := 0
	for i < len(tokens) && ends[i] < len(stem) {
		i++
	}
	if i == len(tokens) {
		return 0
	}
	end := ends[i]
	switch {
	case inflects(tokens[i]):
	case isSuruNoun(tokens[i]) && i+1 < len(tokens) && tokens[i+1].BaseForm == "する" && posAt(tokens[i+1], 0) == "動詞":
		i++
		end = ends[i]
	default:
		return clampLen(end-len(stem), len(tail))
	}
	for i+1 < len(tokens) && continuesInflection(tokens[i+1]) {
		i++
		end = ends[i]
	}
	return clampLen(end-len(stem), len(tail))
}

func inflects(t Token) bool {
	switch posAt(t, 0) {
	case "動詞", "形容詞", "助動詞":
		return true
	}
	return false
}

func isSuruNoun(t Token) bool {
	return posAt(t, 0) == "名詞" && posAt(t, 1) == "サ変接続"
}

func continuesInflection(t Token) bool {
	switch posAt(t, 0) {
	case "助動詞":
		return true
	case "動詞":
		return posAt(t, 1) == "接尾" || posAt(t, 1) == "非自立"
	case "助詞":
		return posAt(t, 1) == "接続助詞" && (t.Surface == "て" || t.Surface == "で")
	}
	return false
}

func posAt(t Token, i int) string {
	if i < len(t.PartsOfSpeech) {
		return t.PartsOfSpeech[i]
	}
	return ""
}

func clampLen(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
