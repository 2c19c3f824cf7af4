package deps

import (
	"slices"
	"strings"
)

// Separators used by [SplitLicenses].
var (
	// SPDX is the compound-expression rule used by npm, PyPI and most
	// registries that publish SPDX expressions.
	SPDX = []string{" OR ", " AND "}

	// CargoLegacy additionally accepts the "/" separator older crates use
	// ("MIT/Apache-2.0").
	CargoLegacy = []string{" OR ", " AND ", "/"}
)

// SplitLicenses normalizes declared license expressions into atomic
// identifiers: surrounding parentheses are stripped, each expression is
// split on seps (case-insensitive), entries are trimmed, empties dropped and
// duplicates removed keeping the first occurrence.
//
//	SplitLicenses([]string{"(MIT OR Apache-2.0)"}, SPDX...) // [MIT Apache-2.0]
//
// Validation is conjunctive, so an OR alternative is treated like an AND
// operand: every part must be allowed for the dependency to pass.
func SplitLicenses(exprs []string, seps ...string) []string {
	var out []string
	for _, expr := range exprs {
		for _, part := range splitFold(expr, seps) {
			part = strings.TrimSpace(strings.Trim(strings.TrimSpace(part), "()"))
			if part != "" && !slices.Contains(out, part) {
				out = append(out, part)
			}
		}
	}
	return out
}

// splitFold splits s on every separator, matching separators regardless of
// case.
func splitFold(s string, seps []string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); {
		matched := 0
		for _, sep := range seps {
			if sep != "" && i+len(sep) <= len(s) && strings.EqualFold(s[i:i+len(sep)], sep) {
				matched = len(sep)
				break
			}
		}
		if matched == 0 {
			i++
			continue
		}
		parts = append(parts, s[start:i])
		i += matched
		start = i
	}
	return append(parts, s[start:])
}
