package profile

import "testing"

func TestSplitDocument(t *testing.T) {
	doc := "\n  Jane Doe, CIO  \n===PROFILE===\n\n===PROFILE===Raj Kumar, HR Director===PROFILE===  \n"

	profiles := Split(doc)

	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d: %q", len(profiles), profiles)
	}
	if profiles[0] != "Jane Doe, CIO" {
		t.Fatalf("expected trimmed first profile, got %q", profiles[0])
	}
	if profiles[1] != "Raj Kumar, HR Director" {
		t.Fatalf("expected second profile, got %q", profiles[1])
	}
}

func TestSplitWithoutSeparator(t *testing.T) {
	profiles := Split("  single profile text  ")

	if len(profiles) != 1 || profiles[0] != "single profile text" {
		t.Fatalf("expected a single trimmed profile, got %q", profiles)
	}
}

func TestSplitEmptyDocument(t *testing.T) {
	if got := Split("  \n ===PROFILE=== \n"); len(got) != 0 {
		t.Fatalf("expected no profiles, got %q", got)
	}
}
