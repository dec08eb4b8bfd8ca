package safety

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// -- Sentinels --

var (
	ErrEmptyInput       = errors.New("input cannot be empty")
	ErrInputTooLong     = errors.New("input too long")
	ErrControlCharacter = errors.New("input contains control characters")
	ErrMalformedInput   = errors.New("input is not valid UTF-8")
)

// CheckInput validates raw user input (prompts, chat text) before it is
// handed to any downstream component. maxLen is measured in Unicode
// codepoints. Unlike Classify, which yields verdict values for generated
// candidates, rejected user input is an error the caller reports and
// recovers from by re-prompting.
func CheckInput(text string, maxLen int) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	if !utf8.ValidString(text) {
		return ErrMalformedInput
	}
	if n := utf8.RuneCountInString(text); n > maxLen {
		return fmt.Errorf("%w: %d codepoints (max %d)", ErrInputTooLong, n, maxLen)
	}
	for _, r := range text {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return ErrControlCharacter
		}
	}
	return nil
}
