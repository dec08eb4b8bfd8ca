package infer

import (
	"fmt"
	"strings"
)

var commandDocs = map[string]string{
	"ls":       "lists directory contents",
	"pwd":      "prints the current working directory",
	"echo":     "prints its arguments",
	"cat":      "prints file contents",
	"head":     "prints the first lines of a file",
	"tail":     "prints the last lines of a file",
	"grep":     "searches text for a pattern",
	"find":     "searches for files and directories",
	"wc":       "counts lines, words and bytes",
	"date":     "prints the current date and time",
	"whoami":   "prints the current user name",
	"hostname": "prints the machine's host name",
	"uname":    "prints system and kernel information",
	"df":       "reports filesystem disk space usage",
	"du":       "reports disk usage of files and directories",
	"free":     "reports memory usage",
	"top":      "shows a live view of running processes",
	"ps":       "lists running processes",
	"which":    "locates a command on the PATH",
	"whereis":  "locates a command's binary, source and man page",
	"file":     "identifies a file's type",
	"stat":     "prints file metadata",
	"touch":    "creates an empty file or updates its timestamp",
	"mkdir":    "creates a directory",
}

var flagDocs = map[string]string{
	"-l":   "long listing",
	"-a":   "including hidden entries",
	"-la":  "long listing including hidden entries",
	"-h":   "with human-readable sizes",
	"-m":   "in megabytes",
	"-s":   "summarized",
	"-sh":  "summarized with human-readable sizes",
	"-n":   "with line numbers",
	"-r":   "recursively",
	"-rn":  "recursively with line numbers",
	"-w":   "counting words",
	"-name": "matching by name",
	"aux":  "for all users, with details",
}

// ExplainCommand produces a one-line human description of a generated
// command. Unknown base commands yield ErrUnknownCommand rather than a
// made-up explanation.
func (e *Engine) ExplainCommand(command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty command", ErrUnknownCommand)
	}

	desc, ok := commandDocs[fields[0]]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}

	var notes []string
	for _, f := range fields[1:] {
		if note, ok := flagDocs[f]; ok {
			notes = append(notes, note)
		}
	}
	if len(notes) == 0 {
		return desc, nil
	}
	return desc + " (" + strings.Join(notes, ", ") + ")", nil
}
