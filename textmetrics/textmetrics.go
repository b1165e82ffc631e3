// Package textmetrics computes transcription agreement rates between the
// two speech providers: word error rate and character error rate against
// a reference text. These are cross-provider agreement numbers, not
// ground-truth accuracy, since the batch has no human transcripts.
package textmetrics

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// WER returns the word error rate of hypothesis against reference:
// word-level edit distance divided by the reference word count.
// An empty reference with a non-empty hypothesis is reported as 1.0.
func WER(reference, hypothesis string) float64 {
	refWords := strings.Fields(reference)
	hypWords := strings.Fields(hypothesis)

	if len(refWords) == 0 {
		if len(hypWords) == 0 {
			return 0
		}
		return 1
	}

	refRunes, hypRunes := encodeWords(refWords, hypWords)
	distance := levenshtein.DistanceForStrings(refRunes, hypRunes, levenshtein.DefaultOptionsWithSub)
	return float64(distance) / float64(len(refWords))
}

// CER returns the character error rate of hypothesis against reference:
// rune-level edit distance divided by the reference rune count.
// An empty reference with a non-empty hypothesis is reported as 1.0.
func CER(reference, hypothesis string) float64 {
	refRunes := []rune(reference)
	hypRunes := []rune(hypothesis)

	if len(refRunes) == 0 {
		if len(hypRunes) == 0 {
			return 0
		}
		return 1
	}

	distance := levenshtein.DistanceForStrings(refRunes, hypRunes, levenshtein.DefaultOptionsWithSub)
	return float64(distance) / float64(len(refRunes))
}

// encodeWords maps each distinct word to a synthetic rune so the
// rune-based edit distance operates on whole words.
func encodeWords(a, b []string) ([]rune, []rune) {
	codes := make(map[string]rune, len(a)+len(b))
	next := rune(1)

	encode := func(words []string) []rune {
		out := make([]rune, len(words))
		for i, w := range words {
			code, ok := codes[w]
			if !ok {
				code = next
				codes[w] = code
				next++
			}
			out[i] = code
		}
		return out
	}

	return encode(a), encode(b)
}
