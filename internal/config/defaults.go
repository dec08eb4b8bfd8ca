// Package config loads application configuration from dotfiles and
// environment variables and merges it with defaults. Dotfile values override
// defaults, and environment variables override everything; the defaults are
// usable with no configuration at all.
package config

// Default input limits, in Unicode codepoints.
const (
	DefaultMaxCandidateLength      = 1000
	DefaultMaxPromptLength         = 1000
	DefaultMaxChatInputLength      = 10000
	DefaultMaxTranslateInputLength = 5000
)

// Config holds all application configuration values.
// NOTE: Values in config files override defaults, including explicit zero
// values. Missing keys are left at their default values.
type Config struct {
	Model     ModelConfig     `json:"model"`
	Safety    SafetyConfig    `json:"safety"`
	Chat      ChatConfig      `json:"chat"`
	Translate TranslateConfig `json:"translate"`
}

type ModelConfig struct {
	// ModelPath points at the inference artifact on disk.
	ModelPath string `json:"model_path"` // Default: "model.onnx"

	// TokenizerPath points at the tokenizer JSON.
	TokenizerPath string `json:"tokenizer_path"` // Default: "tokenizer.json"

	// LoadWaitTimeoutSecs bounds how long a request waits for an in-flight
	// model load before giving up. 0 waits indefinitely.
	LoadWaitTimeoutSecs int `json:"load_wait_timeout_secs"` // Default: 0
}

type SafetyConfig struct {
	MaxCandidateLength      int `json:"max_candidate_length"`       // Default: 1000
	MaxPromptLength         int `json:"max_prompt_length"`          // Default: 1000
	MaxChatInputLength      int `json:"max_chat_input_length"`      // Default: 10000
	MaxTranslateInputLength int `json:"max_translate_input_length"` // Default: 5000

	// ExtraWhitelist adds base commands to the validator's whitelist.
	ExtraWhitelist []string `json:"extra_whitelist"`

	// ExtraRules appends blacklist rules. Each entry is a loosely-typed
	// object ({"category": ..., "pattern": ..., "regex": bool}) decoded
	// into a typed rule spec at startup.
	ExtraRules []map[string]any `json:"extra_rules"`
}

type ChatConfig struct {
	Model       string `json:"model"`        // Default: "gemini-1.5-flash"
	MaxMessages int    `json:"max_messages"` // Default: 50
}

type TranslateConfig struct {
	BaseURL            string `json:"base_url"`             // Default: "https://libretranslate.com"
	TargetLanguage     string `json:"target_language"`      // Default: "en"
	RequestTimeoutSecs int    `json:"request_timeout_secs"` // Default: 30
	ConnectTimeoutSecs int    `json:"connect_timeout_secs"` // Default: 10
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			ModelPath:     "model.onnx",
			TokenizerPath: "tokenizer.json",
		},
		Safety: SafetyConfig{
			MaxCandidateLength:      DefaultMaxCandidateLength,
			MaxPromptLength:         DefaultMaxPromptLength,
			MaxChatInputLength:      DefaultMaxChatInputLength,
			MaxTranslateInputLength: DefaultMaxTranslateInputLength,
		},
		Chat: ChatConfig{
			Model:       "gemini-1.5-flash",
			MaxMessages: 50,
		},
		Translate: TranslateConfig{
			BaseURL:            "https://libretranslate.com",
			TargetLanguage:     "en",
			RequestTimeoutSecs: 30,
			ConnectTimeoutSecs: 10,
		},
	}
}
