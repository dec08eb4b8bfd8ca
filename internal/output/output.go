// Package output renders results for the terminal, as styled text or JSON.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ru1vly/Eidos/internal/translate"
)

// Format selects the rendering mode.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for format strings other than text or json.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat converts a CLI flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (want text or json)", ErrUnknownFormat, s)
	}
}

// CommandResult is the outcome of one prompt-to-command request.
type CommandResult struct {
	Prompt         string   `json:"prompt"`
	Command        string   `json:"command"`
	SafetyLevel    string   `json:"safety_level"`
	IsSafe         bool     `json:"is_safe"`
	BlockedPattern string   `json:"blocked_pattern,omitempty"`
	BlockedReason  string   `json:"blocked_reason,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
	Alternatives   []string `json:"alternatives,omitempty"`
}

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	safeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderCommand renders a CommandResult in the requested format.
func RenderCommand(result *CommandResult, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return renderJSON(result)
	case FormatText:
		return renderCommandText(result), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderCommandText(result *CommandResult) string {
	var sb strings.Builder

	sb.WriteString(labelStyle.Render("Prompt:"))
	sb.WriteString(" " + result.Prompt + "\n")

	if result.IsSafe {
		sb.WriteString(labelStyle.Render("Command:"))
		sb.WriteString(" " + commandStyle.Render(result.Command) + "\n")
		sb.WriteString(safeStyle.Render("✔ safe") + "\n")
	} else {
		sb.WriteString(labelStyle.Render("Command:"))
		sb.WriteString(" " + result.Command + "\n")
		sb.WriteString(blockedStyle.Render(fmt.Sprintf("✘ blocked (%s)", result.SafetyLevel)) + "\n")
		if result.BlockedPattern != "" {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("matched pattern: %q", result.BlockedPattern)) + "\n")
		}
		if result.BlockedReason != "" {
			sb.WriteString(dimStyle.Render(result.BlockedReason) + "\n")
		}
	}

	if result.Explanation != "" {
		sb.WriteString(labelStyle.Render("Explanation:"))
		sb.WriteString(" " + result.Explanation + "\n")
	}

	if len(result.Alternatives) > 0 {
		sb.WriteString(labelStyle.Render("Alternatives:") + "\n")
		for _, alt := range result.Alternatives {
			sb.WriteString("  - " + commandStyle.Render(alt) + "\n")
		}
	}

	return sb.String()
}

// RenderTranslation renders a translation result in the requested format.
func RenderTranslation(result *translate.Result, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return renderJSON(result)
	case FormatText:
		var sb strings.Builder
		if result.WasTranslated {
			sb.WriteString(labelStyle.Render(fmt.Sprintf("Original (%s):", result.SourceLang)))
			sb.WriteString(" " + result.Original + "\n")
			sb.WriteString(labelStyle.Render(fmt.Sprintf("Translated (%s):", result.TargetLang)))
			sb.WriteString(" " + result.Translated + "\n")
		} else {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("Already in %s, no translation needed", result.TargetLang)) + "\n")
			sb.WriteString(result.Original + "\n")
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(data) + "\n", nil
}
