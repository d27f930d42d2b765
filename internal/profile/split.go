package profile

import "strings"

// Separator is the literal token that delimits profiles when several are
// submitted as one concatenated document.
const Separator = "===PROFILE==="

// Split breaks a concatenated document into an ordered sequence of
// trimmed, non-empty profile blocks. A document without the separator is
// a single profile.
func Split(doc string) []string {
	parts := strings.Split(doc, Separator)
	profiles := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		profiles = append(profiles, part)
	}
	return profiles
}
