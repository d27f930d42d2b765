package util

import "testing"

func TestTruncateForLog(t *testing.T) {
	if got := TruncateForLog("  short  ", 10); got != "short" {
		t.Fatalf("expected trimmed string, got %q", got)
	}

	if got := TruncateForLog("abcdefgh", 5); got != "abcde..." {
		t.Fatalf("expected truncated string, got %q", got)
	}

	if got := TruncateForLog("anything", 0); got != "" {
		t.Fatalf("expected empty string for non-positive limit, got %q", got)
	}

	if got := TruncateForLog("приветик", 6); got != "привет..." {
		t.Fatalf("expected rune-aware truncation, got %q", got)
	}
}
