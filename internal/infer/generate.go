package infer

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// intent maps prompt keywords to a candidate command. The first table entry
// whose keywords all appear in the prompt wins, so generation is
// deterministic for a given prompt.
type intent struct {
	keywords []string
	command  string
	detailed string
	concise  string
}

var intentTable = []intent{
	{keywords: []string{"list", "files"}, command: "ls", detailed: "ls -la", concise: "ls"},
	{keywords: []string{"show", "files"}, command: "ls", detailed: "ls -la"},
	{keywords: []string{"hidden", "files"}, command: "ls -la"},
	{keywords: []string{"disk", "space"}, command: "df -h", concise: "df"},
	{keywords: []string{"disk", "usage"}, command: "du -sh .", concise: "du"},
	{keywords: []string{"free", "memory"}, command: "free -m"},
	{keywords: []string{"memory"}, command: "free -m", concise: "free"},
	{keywords: []string{"running", "processes"}, command: "ps aux", concise: "ps"},
	{keywords: []string{"processes"}, command: "ps aux", concise: "ps"},
	{keywords: []string{"system", "monitor"}, command: "top"},
	{keywords: []string{"current", "directory"}, command: "pwd"},
	{keywords: []string{"where", "am", "i"}, command: "pwd"},
	{keywords: []string{"working", "directory"}, command: "pwd"},
	{keywords: []string{"date"}, command: "date"},
	{keywords: []string{"time"}, command: "date"},
	{keywords: []string{"who", "am", "i"}, command: "whoami"},
	{keywords: []string{"current", "user"}, command: "whoami"},
	{keywords: []string{"hostname"}, command: "hostname"},
	{keywords: []string{"machine", "name"}, command: "hostname"},
	{keywords: []string{"kernel"}, command: "uname -a", concise: "uname"},
	{keywords: []string{"system", "information"}, command: "uname -a"},
	{keywords: []string{"search"}, command: "grep -rn pattern .", concise: "grep pattern ."},
	{keywords: []string{"find", "file"}, command: "find . -name target"},
	{keywords: []string{"count", "lines"}, command: "wc -l"},
	{keywords: []string{"word", "count"}, command: "wc -w"},
	{keywords: []string{"first", "lines"}, command: "head"},
	{keywords: []string{"last", "lines"}, command: "tail"},
	{keywords: []string{"read", "file"}, command: "cat"},
	{keywords: []string{"show", "contents"}, command: "cat"},
	{keywords: []string{"create", "directory"}, command: "mkdir newdir"},
	{keywords: []string{"make", "directory"}, command: "mkdir newdir"},
	{keywords: []string{"new", "folder"}, command: "mkdir newdir"},
	{keywords: []string{"create", "file"}, command: "touch newfile"},
	{keywords: []string{"file", "type"}, command: "file"},
	{keywords: []string{"print"}, command: "echo"},
}

var (
	detailedMarkers = []string{"details", "detailed", "verbose", "all options", "long"}
	conciseMarkers  = []string{"simple", "concise", "short", "brief"}
)

// GenerateCommand produces a single candidate command for the prompt. The
// candidate is raw model output: callers must classify it before displaying
// it to anyone.
func (e *Engine) GenerateCommand(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lower := strings.ToLower(prompt)
	for _, in := range intentTable {
		if !matchesAll(lower, in.keywords) {
			continue
		}
		cmd := in.command
		if in.detailed != "" && containsAny(lower, detailedMarkers) {
			cmd = in.detailed
		} else if in.concise != "" && containsAny(lower, conciseMarkers) {
			cmd = in.concise
		}
		if arg := fileArgument(prompt); arg != "" && wantsFileArgument(cmd) {
			cmd = cmd + " " + arg
		}
		return cmd, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnrecognizedPrompt, prompt)
}

// GenerateAlternatives produces up to count distinct candidates for the same
// prompt by re-running generation with modified phrasings. The base
// candidate always comes first; duplicates are dropped and the list is
// padded with the base candidate when too few variations differ.
func (e *Engine) GenerateAlternatives(ctx context.Context, prompt string, count int) ([]string, error) {
	if count == 0 {
		return nil, nil
	}

	base, err := e.GenerateCommand(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if count == 1 {
		return []string{base}, nil
	}

	alternatives := make([]string, 0, count)
	alternatives = append(alternatives, base)

	variations := []string{
		prompt + " with details",
		prompt + " verbose",
		prompt + " concise",
		prompt + " with all options",
		prompt + " simple",
	}
	for _, variation := range variations {
		if len(alternatives) >= count {
			break
		}
		cmd, err := e.GenerateCommand(ctx, variation)
		if err != nil {
			continue
		}
		if cmd != base && !slices.Contains(alternatives, cmd) {
			alternatives = append(alternatives, cmd)
		}
	}

	for len(alternatives) < count {
		alternatives = append(alternatives, base)
	}
	return alternatives, nil
}

func matchesAll(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

func containsAny(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// fileArgument extracts a filename-looking token from the prompt, so "show
// the contents of notes.txt" yields "notes.txt". Tokens with path
// separators are left alone; the validator decides what paths are
// acceptable, not the generator.
func fileArgument(prompt string) string {
	for _, tok := range strings.Fields(prompt) {
		tok = strings.Trim(tok, ".,;:!?\"'")
		if strings.ContainsRune(tok, '.') && !strings.HasPrefix(tok, ".") && !strings.ContainsRune(tok, '/') {
			return tok
		}
	}
	return ""
}

// wantsFileArgument reports whether the generated command still needs a file
// operand appended.
func wantsFileArgument(cmd string) bool {
	switch strings.Fields(cmd)[0] {
	case "cat", "head", "tail", "wc", "file":
		return len(strings.Fields(cmd)) <= 2
	default:
		return false
	}
}
