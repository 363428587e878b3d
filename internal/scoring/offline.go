package scoring

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// OfflineEvaluator scores by edit-distance similarity between the target
// and the transcript. It is used when no language model is configured.
type OfflineEvaluator struct{}

func (OfflineEvaluator) Evaluate(_ context.Context, target, recognized string) (Evaluation, error) {
	t, r := normalizeText(target), normalizeText(recognized)
	if t == "" {
		return Evaluation{Score: 0, Feedback: "Nothing to compare against."}, nil
	}

	sim := levenshtein.Similarity(t, r, nil)
	score := Clamp(int(math.Round(sim * 100)))
	return Evaluation{Score: score, Feedback: offlineFeedback(score)}, nil
}

func offlineFeedback(score int) string {
	switch {
	case score >= 95:
		return "Great pronunciation!"
	case score >= PassingScore:
		return "Close! Listen once more and match the tones."
	case score >= 40:
		return "Some syllables were missed. Try again slowly."
	default:
		return "That didn't match. Listen and try again."
	}
}

// normalizeText drops punctuation, spaces and ellipses so that
// "你好！" and "你好" compare equal.
func normalizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
