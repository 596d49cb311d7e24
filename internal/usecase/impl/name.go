package impl

import "strings"

// splitName breaks a combined display name into first and last on the FIRST
// space only. "Mary Anne Smith" splits to ("Mary", "Anne Smith"): a
// multi-word last name survives the round-trip, a multi-word first name does
// not. This lossiness is a known limitation of storing a single combined
// column; do not "fix" it here without a schema change.
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}

	first, last, found := strings.Cut(name, " ")
	if !found {
		return name, ""
	}

	return first, last
}

// composeName joins trimmed first/last into the stored display name.
func composeName(first, last string) string {
	return strings.TrimSpace(first) + " " + strings.TrimSpace(last)
}
