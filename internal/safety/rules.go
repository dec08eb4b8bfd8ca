package safety

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxCandidateLength bounds candidate commands in Unicode codepoints.
const DefaultMaxCandidateLength = 1000

type matchKind int

const (
	// matchSubstring matches anywhere in the candidate, case-insensitively.
	matchSubstring matchKind = iota
	// matchRegexp matches the compiled expression against the lowercased
	// candidate.
	matchRegexp
	// matchBaseCommand matches the base command token (first whitespace
	// field, path prefix stripped) exactly.
	matchBaseCommand
)

// PatternRule is a single category-tagged matcher. Rules are immutable after
// construction and safe for concurrent use.
type PatternRule struct {
	Category Category
	Pattern  string

	kind matchKind
	re   *regexp.Regexp
}

func (r PatternRule) matches(lower, base string) bool {
	switch r.kind {
	case matchBaseCommand:
		return base == r.Pattern
	case matchRegexp:
		return r.re.MatchString(lower)
	default:
		return strings.Contains(lower, strings.ToLower(r.Pattern))
	}
}

// RuleSpec describes one additional blacklist rule supplied through
// configuration. Regex specs are compiled at construction time so a bad
// expression fails startup, never a classification call.
type RuleSpec struct {
	Category Category `mapstructure:"category"`
	Pattern  string   `mapstructure:"pattern"`
	Regex    bool     `mapstructure:"regex"`
}

// Options configures rule-set construction beyond the built-in table.
// The zero value yields the default rule set.
type Options struct {
	// MaxCandidateLength is the codepoint limit for candidates.
	// Zero means DefaultMaxCandidateLength.
	MaxCandidateLength int

	// ExtraWhitelist adds base commands to the built-in whitelist.
	ExtraWhitelist []string

	// ExtraRules appends blacklist rules to the built-in table.
	ExtraRules []RuleSpec
}

// RuleSet holds the blacklist table and the whitelist of read-only base
// commands. It is built once and never mutated afterwards; every validation
// call shares it by reference without locking.
type RuleSet struct {
	rules     []PatternRule
	whitelist map[string]struct{}
	maxLen    int
}

// whitelistedCommands are base commands known to be read-only and
// side-effect-free (listing, reading and stat-like operations).
var whitelistedCommands = []string{
	"ls", "pwd", "echo", "cat", "head", "tail", "grep", "find", "wc",
	"date", "whoami", "hostname", "uname", "df", "du", "free", "top",
	"ps", "which", "whereis", "file", "stat", "touch", "mkdir",
}

func baseCommandRules(category Category, names ...string) []PatternRule {
	rules := make([]PatternRule, 0, len(names))
	for _, name := range names {
		rules = append(rules, PatternRule{
			Category: category,
			Pattern:  name,
			kind:     matchBaseCommand,
		})
	}
	return rules
}

func substringRules(category Category, patterns ...string) []PatternRule {
	rules := make([]PatternRule, 0, len(patterns))
	for _, pattern := range patterns {
		rules = append(rules, PatternRule{
			Category: category,
			Pattern:  pattern,
			kind:     matchSubstring,
		})
	}
	return rules
}

// defaultRules builds the built-in blacklist table. Table order only affects
// which pattern is reported when several rules of the same category match;
// the decision itself is order-independent because the scan is exhaustive.
func defaultRules() []PatternRule {
	var rules []PatternRule

	// Destructive: deletion, raw disk writes, filesystem and swap
	// manipulation, process and system shutdown, firewall mutation,
	// and network egress / remote access tools.
	rules = append(rules, baseCommandRules(CategoryDestructive,
		"rm", "rmdir", "dd", "mkfs", "fdisk", "shred",
		"shutdown", "reboot", "halt", "poweroff", "init",
		"kill", "killall", "pkill",
		"mount", "umount", "mkswap", "swapon", "swapoff",
		"iptables", "ip6tables", "nft",
		"curl", "wget", "nc", "netcat", "telnet", "ssh", "scp", "sftp",
		"rsync",
	)...)
	rules = append(rules, PatternRule{
		Category: CategoryDestructive,
		Pattern:  "-delete/-exec flag",
		kind:     matchRegexp,
		re:       regexp.MustCompile(`(^|\s)-(delete|exec)(\s|$)`),
	})

	// Privilege escalation: user switching/elevation and account or
	// permission mutation.
	rules = append(rules, baseCommandRules(CategoryPrivilegeEscalation,
		"su", "sudo", "doas", "passwd",
		"chown", "chmod", "chgrp",
		"useradd", "userdel", "usermod",
		"groupadd", "groupdel", "groupmod",
	)...)

	// Shell metacharacters and injection constructs. Longer forms first so
	// the reported pattern names the most specific construct.
	rules = append(rules, substringRules(CategoryShellMetacharacter,
		"$((", "$(", "${", "<<<", "<(", ">(", ">>", "&>", "|&",
		"&&", "||", ";", "|", ">", "<", "&", "`",
		"\n", "\r", "\\", "'", "\"",
		"*", "?", "[", "]", "{", "}", "!", "~", "^",
	)...)

	// Path traversal and sensitive system paths.
	rules = append(rules, substringRules(CategoryPathTraversal,
		"../", "/dev/", "/proc/", "/sys/", ".ssh",
	)...)

	// Encoding evasion: escape sequences and field-separator tricks.
	rules = append(rules, substringRules(CategoryEncodingEvasion,
		`\x`, `\0`, "ifs",
	)...)

	return rules
}

// NewRuleSet builds an immutable rule set from the built-in table plus any
// configured extensions.
func NewRuleSet(opts Options) (*RuleSet, error) {
	maxLen := opts.MaxCandidateLength
	if maxLen <= 0 {
		maxLen = DefaultMaxCandidateLength
	}

	rules := defaultRules()
	for _, spec := range opts.ExtraRules {
		rule, err := compileSpec(spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	whitelist := make(map[string]struct{}, len(whitelistedCommands)+len(opts.ExtraWhitelist))
	for _, cmd := range whitelistedCommands {
		whitelist[cmd] = struct{}{}
	}
	for _, cmd := range opts.ExtraWhitelist {
		whitelist[strings.ToLower(strings.TrimSpace(cmd))] = struct{}{}
	}

	return &RuleSet{
		rules:     rules,
		whitelist: whitelist,
		maxLen:    maxLen,
	}, nil
}

// DefaultRuleSet returns a rule set with the built-in table and defaults.
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(Options{})
	if err != nil {
		// The built-in table always compiles.
		panic(err)
	}
	return rs
}

func compileSpec(spec RuleSpec) (PatternRule, error) {
	switch spec.Category {
	case CategoryDestructive, CategoryPrivilegeEscalation,
		CategoryShellMetacharacter, CategoryPathTraversal,
		CategoryEncodingEvasion:
	default:
		return PatternRule{}, fmt.Errorf("rule %q: unknown category %q", spec.Pattern, spec.Category)
	}
	if spec.Pattern == "" {
		return PatternRule{}, fmt.Errorf("rule with category %q: pattern cannot be empty", spec.Category)
	}

	rule := PatternRule{
		Category: spec.Category,
		Pattern:  spec.Pattern,
		kind:     matchSubstring,
	}
	if spec.Regex {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return PatternRule{}, fmt.Errorf("rule %q: invalid regex: %w", spec.Pattern, err)
		}
		rule.kind = matchRegexp
		rule.re = re
	}
	return rule, nil
}

// Rules returns a copy of the blacklist table, mainly for introspection and
// tests. The rule set itself stays immutable.
func (rs *RuleSet) Rules() []PatternRule {
	out := make([]PatternRule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Whitelisted reports whether base is an allowed read-only command.
func (rs *RuleSet) Whitelisted(base string) bool {
	_, ok := rs.whitelist[base]
	return ok
}
