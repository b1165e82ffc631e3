package util

import "testing"

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "fallback", "ignored"); got != "fallback" {
		t.Errorf("Coalesce = %q, want fallback", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("Coalesce = %q, want zero value", got)
	}
	if got := Coalesce(0, 7); got != 7 {
		t.Errorf("Coalesce = %d, want 7", got)
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("sk-abcdef123456", 4); got != "sk-a***" {
		t.Errorf("MaskSecret = %q", got)
	}
	if got := MaskSecret("abc", 4); got != "***" {
		t.Errorf("MaskSecret short = %q, want fully masked", got)
	}
	if got := MaskSecret("", 4); got != "***" {
		t.Errorf("MaskSecret empty = %q, want fully masked", got)
	}
}
