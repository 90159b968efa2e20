// Package segment implements deterministic splitting of free-text accession
// cells into individual name fragments. Two strategies exist: enumerated
// variety lists ("1. SANEEN. 2. WQ 110") and Latin species binomials packed
// into one cell ("Hordeum vulgare, Rhanterium epapposum").
//
// The rules here are the safety net behind the LLM resolver; they must never
// fail, and on text they do not recognize they return the input as a single
// fragment.
package segment

import (
	"regexp"
	"strings"
)

var (
	// numberedNameRe matches "N. <name>" where <name> is a run of non-digit
	// characters. A match is only a valid fragment when it ends at the next
	// "N." marker or at the end of the text; a bare digit run (as in
	// "3. JIW.1") invalidates the candidate.
	numberedNameRe = regexp.MustCompile(`\d+\.\s*[^0-9]+`)
	markerStartRe  = regexp.MustCompile(`^\d+\.`)

	// enumerationSplitRe finds "period, whitespace, N." boundaries used by
	// the secondary variety rule.
	enumerationSplitRe = regexp.MustCompile(`\.\s+(\d+\.)`)

	// binomialRe is a naive Latin binomial matcher: capitalized genus,
	// whitespace, lowercase epithet.
	binomialRe = regexp.MustCompile(`[A-Z][a-z]+\s+[a-z]+`)
)

// ReferenceChecker reports membership in the canonical species list.
// Membership is advisory; it never blocks segmentation.
type ReferenceChecker interface {
	Contains(name string) bool
}

// Normalize trims a raw cell value. ok is false for missing/blank cells,
// which pass through untouched and must not be segmented.
func Normalize(raw string) (text string, ok bool) {
	text = strings.TrimSpace(raw)
	return text, text != ""
}

// Varieties splits normalized variety text into name fragments.
// Always returns at least one fragment.
func Varieties(text string) []string {
	scope := text
	if idx := strings.Index(scope, ":"); idx >= 0 {
		scope = strings.TrimSpace(scope[idx+1:])
	}

	if frags := numberedFragments(scope); len(frags) >= 2 {
		return frags
	}
	if frags := splitEnumerated(scope); len(frags) >= 2 {
		return frags
	}
	return []string{text}
}

// numberedFragments implements the primary variety rule: every "N. <name>"
// run that terminates at the next marker or the end of the text.
func numberedFragments(text string) []string {
	var frags []string
	for _, loc := range numberedNameRe.FindAllStringIndex(text, -1) {
		if loc[1] != len(text) && !markerStartRe.MatchString(text[loc[1]:]) {
			// The run stopped at digits that are not a "N." marker,
			// e.g. the trailing "1" of "3. JIW.1". Not a list entry.
			continue
		}
		cleaned := strings.TrimRight(strings.TrimSpace(text[loc[0]:loc[1]]), ".")
		if cleaned != "" {
			frags = append(frags, cleaned)
		}
	}
	return frags
}

// splitEnumerated implements the secondary variety rule: split at every
// "period, whitespace, N." boundary, keeping the text before the first
// marker as fragment zero and re-attaching each marker to its name.
func splitEnumerated(text string) []string {
	locs := enumerationSplitRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	var frags []string
	if first := strings.TrimSpace(text[:locs[0][0]]); first != "" {
		frags = append(frags, first)
	}
	for i, loc := range locs {
		marker := text[loc[2]:loc[3]]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if name := strings.TrimSpace(text[loc[1]:end]); name != "" {
			frags = append(frags, marker+" "+name)
		}
	}
	return frags
}

// Species splits normalized species text into binomial fragments. The
// reference list, when provided, narrows matches to known names but never
// below two fragments. Always returns at least one fragment.
func Species(text string, ref ReferenceChecker) []string {
	if strings.Contains(text, ",") {
		var pieces []string
		for _, p := range strings.Split(text, ",") {
			if p = strings.TrimSpace(p); p != "" {
				pieces = append(pieces, p)
			}
		}
		if len(pieces) >= 2 {
			return pieces
		}
	}

	matches := binomialRe.FindAllString(text, -1)
	if len(matches) >= 2 {
		if ref != nil {
			var known []string
			for _, m := range matches {
				if ref.Contains(m) {
					known = append(known, m)
				}
			}
			if len(known) >= 2 {
				return known
			}
		}
		return matches
	}

	return []string{text}
}
