// Package kana classifies runes by Japanese syllabary script.
package kana

import (
	"strings"
	"unicode"
)

// Class is a regexp character class matching exactly the runes for which
// IsKana reports true.
const Class = `[\p{Hiragana}\p{Katakana}\x{30FC}\x{3099}-\x{309C}]`

// IsKana reports whether r belongs to the hiragana or katakana syllabary.
// The prolonged sound mark and the (combining) voicing marks are counted as
// kana even though Unicode assigns them to the Common/Inherited scripts.
func IsKana(r rune) bool {
	if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
		return true
	}
	return r == 'ー' || (r >= 0x3099 && r <= 0x309C)
}

// Strip removes every kana rune from s, leaving its kanji skeleton.
func Strip(s string) string {
	return strings.Map(func(r rune) rune {
		if IsKana(r) {
			return -1
		}
		return r
	}, s)
}
