package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuleSet_ExtraWhitelist(t *testing.T) {
	rs, err := NewRuleSet(Options{ExtraWhitelist: []string{"uptime", " LSCPU "}})
	require.NoError(t, err)

	assert.True(t, rs.Classify("uptime").Allowed)
	assert.True(t, rs.Classify("lscpu").Allowed)
	// Built-in whitelist still applies.
	assert.True(t, rs.Classify("ls -la").Allowed)
}

func TestNewRuleSet_ExtraRules(t *testing.T) {
	rs, err := NewRuleSet(Options{
		ExtraRules: []RuleSpec{
			{Category: CategoryDestructive, Pattern: "truncate"},
			{Category: CategoryEncodingEvasion, Pattern: `%[0-9a-f]{2}`, Regex: true},
		},
	})
	require.NoError(t, err)

	verdict := rs.Classify("ls truncate.log")
	require.True(t, verdict.Blocked())
	assert.Equal(t, CategoryDestructive, verdict.Category)

	verdict = rs.Classify("cat file%2fname")
	require.True(t, verdict.Blocked())
	assert.Equal(t, CategoryEncodingEvasion, verdict.Category)
}

func TestNewRuleSet_InvalidRegex(t *testing.T) {
	_, err := NewRuleSet(Options{
		ExtraRules: []RuleSpec{
			{Category: CategoryDestructive, Pattern: "([", Regex: true},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex")
}

func TestNewRuleSet_UnknownCategory(t *testing.T) {
	_, err := NewRuleSet(Options{
		ExtraRules: []RuleSpec{
			{Category: "made-up", Pattern: "x"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestNewRuleSet_EmptyPattern(t *testing.T) {
	_, err := NewRuleSet(Options{
		ExtraRules: []RuleSpec{
			{Category: CategoryDestructive},
		},
	})
	require.Error(t, err)
}

func TestNewRuleSet_CustomMaxLength(t *testing.T) {
	rs, err := NewRuleSet(Options{MaxCandidateLength: 5})
	require.NoError(t, err)

	assert.True(t, rs.Classify("ls").Allowed)

	verdict := rs.Classify("ls -la /tmp")
	require.True(t, verdict.Blocked())
	assert.Equal(t, "too-long", verdict.Reason)
}

func TestWhitelisted(t *testing.T) {
	rs := DefaultRuleSet()

	assert.True(t, rs.Whitelisted("ls"))
	assert.True(t, rs.Whitelisted("stat"))
	assert.False(t, rs.Whitelisted("rm"))
	assert.False(t, rs.Whitelisted(""))
}

func TestScanStructure(t *testing.T) {
	tests := []struct {
		candidate string
		construct string
		found     bool
	}{
		{"ls -la", "", false},
		{"cat file.txt", "", false},
		{"find . -name test", "", false},
		{"echo hi; ls", ";", true},
		{"ls | grep foo", "|", true},
		{"ls && pwd", "&&", true},
		{"cat <file", "<", true},
		{"echo $(date)", "$( )", true},
		{"sleep 10 &", "&", true},
		{"(cd /tmp)", "( )", true},
		{`cat "unterminated`, "unparseable input", true},
	}

	for _, tt := range tests {
		construct, found := scanStructure(tt.candidate)
		assert.Equal(t, tt.found, found, "candidate %q", tt.candidate)
		if tt.found && tt.construct != "" {
			assert.Equal(t, tt.construct, construct, "candidate %q", tt.candidate)
		}
	}
}

func TestCheckInput(t *testing.T) {
	assert.ErrorIs(t, CheckInput("", 100), ErrEmptyInput)
	assert.ErrorIs(t, CheckInput("   ", 100), ErrEmptyInput)
	assert.ErrorIs(t, CheckInput("list all files, twice over", 10), ErrInputTooLong)
	assert.ErrorIs(t, CheckInput("beep \x07", 100), ErrControlCharacter)
	assert.ErrorIs(t, CheckInput(string([]byte{0xff}), 100), ErrMalformedInput)
	assert.NoError(t, CheckInput("list all files", 100))
	assert.NoError(t, CheckInput("multi\nline\tinput", 100))
}
