package config

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/Ru1vly/Eidos/internal/safety"
)

// -- Sentinels --

var (
	ErrModelArtifactMissing = errors.New("model artifact not found")
	ErrTokenizerMissing     = errors.New("tokenizer file not found")
)

// Validate checks the invariants the rest of the system relies on. It does
// not touch the filesystem; artifact existence is checked separately by
// ValidateModelArtifacts so that chat and translate work without a model.
func (c *Config) Validate() error {
	if c.Model.ModelPath == "" {
		return fmt.Errorf("model.model_path cannot be empty")
	}
	if c.Model.TokenizerPath == "" {
		return fmt.Errorf("model.tokenizer_path cannot be empty")
	}
	if c.Model.LoadWaitTimeoutSecs < 0 {
		return fmt.Errorf("model.load_wait_timeout_secs cannot be negative")
	}

	limits := map[string]int{
		"safety.max_candidate_length":       c.Safety.MaxCandidateLength,
		"safety.max_prompt_length":          c.Safety.MaxPromptLength,
		"safety.max_chat_input_length":      c.Safety.MaxChatInputLength,
		"safety.max_translate_input_length": c.Safety.MaxTranslateInputLength,
	}
	for name, v := range limits {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}

	if c.Chat.MaxMessages <= 0 {
		return fmt.Errorf("chat.max_messages must be positive, got %d", c.Chat.MaxMessages)
	}
	if c.Translate.BaseURL == "" {
		return fmt.Errorf("translate.base_url cannot be empty")
	}
	if c.Translate.TargetLanguage == "" {
		return fmt.Errorf("translate.target_language cannot be empty")
	}

	// Extra rules must decode and compile now, so a bad pattern fails
	// startup instead of a classification call.
	if _, err := c.SafetyOptions(); err != nil {
		return err
	}

	return nil
}

// SafetyOptions converts the safety section into validator options, decoding
// the loosely-typed extra rules into typed specs.
func (c *Config) SafetyOptions() (safety.Options, error) {
	specs := make([]safety.RuleSpec, 0, len(c.Safety.ExtraRules))
	for i, raw := range c.Safety.ExtraRules {
		var spec safety.RuleSpec
		if err := mapstructure.Decode(raw, &spec); err != nil {
			return safety.Options{}, fmt.Errorf("safety.extra_rules[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}

	opts := safety.Options{
		MaxCandidateLength: c.Safety.MaxCandidateLength,
		ExtraWhitelist:     c.Safety.ExtraWhitelist,
		ExtraRules:         specs,
	}
	// Compile once here to surface bad patterns as config errors.
	if _, err := safety.NewRuleSet(opts); err != nil {
		return safety.Options{}, fmt.Errorf("safety.extra_rules: %w", err)
	}
	return opts, nil
}

// ValidateModelArtifacts checks that the configured artifact paths exist.
// Only the command-generation path needs this; chat and translation do not.
func (c *Config) ValidateModelArtifacts(fs FileSystem) error {
	if _, err := fs.Stat(c.Model.ModelPath); err != nil {
		return fmt.Errorf("%w: %s", ErrModelArtifactMissing, c.Model.ModelPath)
	}
	if _, err := fs.Stat(c.Model.TokenizerPath); err != nil {
		return fmt.Errorf("%w: %s", ErrTokenizerMissing, c.Model.TokenizerPath)
	}
	return nil
}
