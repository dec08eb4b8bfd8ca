// Package safety classifies generated shell commands before they are shown
// to the user. Classification is pure and table-driven: an immutable rule
// set is built once at startup and shared by reference across all callers,
// so Classify needs no synchronization.
package safety

// Category identifies why a candidate command was blocked.
type Category string

const (
	CategoryDestructive         Category = "destructive"
	CategoryPrivilegeEscalation Category = "privilege-escalation"
	CategoryShellMetacharacter  Category = "shell-metacharacter"
	CategoryPathTraversal       Category = "path-traversal"
	CategoryEncodingEvasion     Category = "encoding-evasion"
	CategoryNotWhitelisted      Category = "not-whitelisted"
	CategoryInputError          Category = "input-error"
)

// severityRank orders categories for reporting when several rules match the
// same candidate. The scan itself is always exhaustive; only the reported
// category follows this tie-break order. Lower rank wins.
func severityRank(c Category) int {
	switch c {
	case CategoryDestructive:
		return 0
	case CategoryPrivilegeEscalation:
		return 1
	case CategoryShellMetacharacter:
		return 2
	case CategoryPathTraversal:
		return 3
	case CategoryEncodingEvasion:
		return 4
	case CategoryNotWhitelisted:
		return 5
	default:
		return 6
	}
}

// Verdict is the outcome of classifying a single candidate. It is a plain
// value: a blocked command is a normal result, never an error.
type Verdict struct {
	Allowed        bool
	Category       Category
	MatchedPattern string
	Reason         string
}

// Blocked reports whether the verdict rejects the candidate.
func (v Verdict) Blocked() bool {
	return !v.Allowed
}
