package infer

import (
	"errors"
)

// -- Sentinels --

var (
	ErrArtifactMissing    = errors.New("model artifact not found")
	ErrArtifactEmpty      = errors.New("model artifact is empty")
	ErrTokenizerMissing   = errors.New("tokenizer file not found")
	ErrTokenizerCorrupt   = errors.New("tokenizer file is not valid JSON")
	ErrTokenizerNoVocab   = errors.New("tokenizer has no vocabulary table")
	ErrUnrecognizedPrompt = errors.New("no command could be generated for prompt")
	ErrUnknownCommand     = errors.New("no explanation available for command")
)
