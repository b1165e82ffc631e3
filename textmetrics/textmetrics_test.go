package textmetrics

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWER(t *testing.T) {
	cases := []struct {
		name       string
		ref, hyp   string
		want       float64
	}{
		{"identical", "the cat sat on the mat", "the cat sat on the mat", 0},
		{"one substitution", "the cat sat", "the dog sat", 1.0 / 3.0},
		{"one deletion", "the cat sat", "the cat", 1.0 / 3.0},
		{"one insertion", "the cat", "the big cat", 0.5},
		{"both empty", "", "", 0},
		{"empty reference", "", "some words", 1},
		{"empty hypothesis", "one two three four", "", 1},
		{"whitespace normalized", "a  b\tc", "a b c", 0},
	}
	for _, tc := range cases {
		if got := WER(tc.ref, tc.hyp); !almostEqual(got, tc.want) {
			t.Errorf("%s: WER = %f, want %f", tc.name, got, tc.want)
		}
	}
}

func TestCER(t *testing.T) {
	cases := []struct {
		name     string
		ref, hyp string
		want     float64
	}{
		{"identical", "kitten", "kitten", 0},
		{"classic kitten-sitting", "kitten", "sitting", 3.0 / 6.0},
		{"both empty", "", "", 0},
		{"empty reference", "", "abc", 1},
		{"unicode runes", "कौआ", "कौवा", 1.0 / 3.0},
	}
	for _, tc := range cases {
		if got := CER(tc.ref, tc.hyp); !almostEqual(got, tc.want) {
			t.Errorf("%s: CER = %f, want %f", tc.name, got, tc.want)
		}
	}
}

func TestWER_WordsNotCharacters(t *testing.T) {
	// Similar spellings must still count as whole-word substitutions.
	if got := WER("cat", "cats"); !almostEqual(got, 1.0) {
		t.Errorf("WER(cat, cats) = %f, want 1.0", got)
	}
}
