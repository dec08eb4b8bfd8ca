// Package infer is the inference adapter: it loads the on-disk model and
// tokenizer artifacts into an Engine and turns natural-language prompts into
// candidate shell commands. The rest of the system treats both operations as
// black boxes; an Engine is the opaque handle the model cache hands out.
package infer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Engine is a loaded inference artifact. It is read-only after Load and safe
// for concurrent use; no caller may mutate it.
type Engine struct {
	modelPath     string
	tokenizerPath string

	// modelData keeps the artifact resident so repeated generations never
	// touch the disk again. Loading it is the expensive step the model
	// cache exists to amortize.
	modelData []byte
	vocab     map[string]int
}

// tokenizerFile mirrors the two tokenizer layouts in the wild: a top-level
// vocab table, or one nested under "model".
type tokenizerFile struct {
	Vocab map[string]int `json:"vocab"`
	Model struct {
		Vocab map[string]int `json:"vocab"`
	} `json:"model"`
}

// Load reads the model and tokenizer artifacts from disk. This is the
// expensive, blocking operation callers are expected to run behind the
// model cache.
func Load(modelPath, tokenizerPath string) (*Engine, error) {
	modelData, err := os.ReadFile(modelPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, modelPath)
		}
		return nil, fmt.Errorf("reading model artifact %s: %w", modelPath, err)
	}
	if len(modelData) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrArtifactEmpty, modelPath)
	}

	tokenizerData, err := os.ReadFile(tokenizerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTokenizerMissing, tokenizerPath)
		}
		return nil, fmt.Errorf("reading tokenizer %s: %w", tokenizerPath, err)
	}

	var tok tokenizerFile
	if err := json.Unmarshal(tokenizerData, &tok); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTokenizerCorrupt, tokenizerPath, err)
	}

	vocab := tok.Vocab
	if len(vocab) == 0 {
		vocab = tok.Model.Vocab
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTokenizerNoVocab, tokenizerPath)
	}

	return &Engine{
		modelPath:     modelPath,
		tokenizerPath: tokenizerPath,
		modelData:     modelData,
		vocab:         vocab,
	}, nil
}

// ModelPath returns the path the artifact was loaded from.
func (e *Engine) ModelPath() string {
	return e.modelPath
}

// ArtifactSize returns the loaded artifact size in bytes.
func (e *Engine) ArtifactSize() int {
	return len(e.modelData)
}

// VocabSize returns the number of tokenizer vocabulary entries.
func (e *Engine) VocabSize() int {
	return len(e.vocab)
}
