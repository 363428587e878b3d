package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/ui/theme"
)

// toneMarks maps each tone-marked vowel to its tone.
var toneMarks = map[rune]int{}

func init() {
	for tone, vowels := range [5]string{
		1: "āēīōūǖĀĒĪŌŪǕ",
		2: "áéíóúǘÁÉÍÓÚǗ",
		3: "ǎěǐǒǔǚǍĚǏǑǓǙ",
		4: "àèìòùǜÀÈÌÒÙǛ",
	} {
		for _, r := range vowels {
			toneMarks[r] = tone
		}
	}
}

// Tone returns the tone of a marked vowel, or 0 for anything else.
func Tone(r rune) int {
	return toneMarks[r]
}

// Pinyin renders romanization with each tone-marked vowel in its tone
// color so the contour stands out.
func Pinyin(s string) string {
	var b, plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			b.WriteString(theme.Pinyin.Render(plain.String()))
			plain.Reset()
		}
	}
	for _, r := range s {
		tone := Tone(r)
		if tone == 0 {
			plain.WriteRune(r)
			continue
		}
		flush()
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Tones[tone]).Bold(true).Render(string(r)))
	}
	flush()
	return b.String()
}
