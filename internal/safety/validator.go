package safety

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classify decides whether a candidate command is safe to display.
//
// It is pure and total: every input, however malformed, yields a Verdict and
// no input panics. The blacklist scan always covers the full candidate and
// every rule, even when the base command is whitelisted; whitelisting narrows
// which commands are eligible for allowance, it never overrides a detected
// dangerous pattern. When several rules match, the reported category is the
// highest-severity one (see severityRank), so the Allowed/Blocked outcome
// never depends on table order.
func (rs *RuleSet) Classify(candidate string) Verdict {
	if v, bad := rs.checkInput(candidate); bad {
		return v
	}

	lower := strings.ToLower(candidate)
	base := baseCommand(candidate)

	best, found := rs.scanRules(lower, base)

	// Structural scan catches constructs the substring table can miss
	// (for example quoted separators the parser still honours).
	if construct, ok := scanStructure(candidate); ok {
		structural := Verdict{
			Category:       CategoryShellMetacharacter,
			MatchedPattern: construct,
			Reason:         "shell construct",
		}
		if !found || severityRank(structural.Category) < severityRank(best.Category) {
			best = structural
		}
		found = true
	}

	if found {
		return best
	}

	if !rs.Whitelisted(base) {
		return Verdict{
			Category:       CategoryNotWhitelisted,
			MatchedPattern: base,
			Reason:         "base command is not on the whitelist",
		}
	}

	return Verdict{Allowed: true}
}

// scanRules runs the exhaustive blacklist scan and returns the
// highest-severity match. Ties within a category keep the first rule in
// table order, which is stable for the built-in table.
func (rs *RuleSet) scanRules(lower, base string) (Verdict, bool) {
	var best Verdict
	found := false
	for _, rule := range rs.rules {
		if !rule.matches(lower, base) {
			continue
		}
		if !found || severityRank(rule.Category) < severityRank(best.Category) {
			best = Verdict{
				Category:       rule.Category,
				MatchedPattern: rule.Pattern,
				Reason:         "matched blacklist pattern",
			}
			found = true
		}
	}
	return best, found
}

func (rs *RuleSet) checkInput(candidate string) (Verdict, bool) {
	if strings.TrimSpace(candidate) == "" {
		return Verdict{
			Category: CategoryInputError,
			Reason:   "empty",
		}, true
	}

	if !utf8.ValidString(candidate) {
		return Verdict{
			Category: CategoryInputError,
			Reason:   "malformed",
		}, true
	}

	if n := utf8.RuneCountInString(candidate); n > rs.maxLen {
		return Verdict{
			Category:       CategoryInputError,
			MatchedPattern: fmt.Sprintf("%d codepoints (max %d)", n, rs.maxLen),
			Reason:         "too-long",
		}, true
	}

	for _, r := range candidate {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return Verdict{
				Category: CategoryInputError,
				Reason:   "control-char",
			}, true
		}
	}

	return Verdict{}, false
}

// baseCommand isolates the base command: the first whitespace field with any
// path prefix stripped, lowercased. "/usr/bin/LS -la" yields "ls".
func baseCommand(candidate string) string {
	fields := strings.Fields(candidate)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(filepath.Base(fields[0]))
}
