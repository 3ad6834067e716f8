package model

import (
	"regexp"
	"strings"
)

var relationTypePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// NormalizeRelationType upper-cases a relationship label and replaces
// spaces and dashes with underscores: "allies with" -> "ALLIES_WITH".
func NormalizeRelationType(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// ValidRelationType reports whether s may be used as a graph relationship
// type. Only normalized ASCII identifiers qualify.
func ValidRelationType(s string) bool {
	return relationTypePattern.MatchString(s)
}
