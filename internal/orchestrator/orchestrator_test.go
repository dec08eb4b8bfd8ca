package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Ru1vly/Eidos/internal/config"
	"github.com/Ru1vly/Eidos/internal/infer"
	"github.com/Ru1vly/Eidos/internal/safety"
)

// writeArtifacts puts a valid model and tokenizer pair in a temp dir and
// returns a config pointing at them.
func writeArtifacts(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.onnx")
	tokenizerPath := filepath.Join(dir, "tokenizer.json")
	require.NoError(t, os.WriteFile(modelPath, []byte("weights"), 0o644))
	require.NoError(t, os.WriteFile(tokenizerPath, []byte(`{"vocab":{"ls":0,"pwd":1}}`), 0o644))

	cfg := config.DefaultConfig()
	cfg.Model.ModelPath = modelPath
	cfg.Model.TokenizerPath = tokenizerPath
	return cfg
}

func newTestService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	return NewService(cfg, safety.DefaultRuleSet(), zaptest.NewLogger(t))
}

func TestService_GenerateCommand_Safe(t *testing.T) {
	service := newTestService(t, writeArtifacts(t))

	result, err := service.GenerateCommand(context.Background(), "list files", GenerateOptions{})

	require.NoError(t, err)
	assert.True(t, result.IsSafe)
	assert.Equal(t, "ls", result.Command)
	assert.Equal(t, "safe", result.SafetyLevel)
	assert.Empty(t, result.BlockedPattern)
}

func TestService_GenerateCommand_BlockedIsAResult(t *testing.T) {
	cfg := writeArtifacts(t)
	rules, err := safety.NewRuleSet(safety.Options{
		ExtraRules: []safety.RuleSpec{
			{Category: safety.CategoryDestructive, Pattern: "df"},
		},
	})
	require.NoError(t, err)
	service := NewService(cfg, rules, zaptest.NewLogger(t))

	result, err := service.GenerateCommand(context.Background(), "show disk space", GenerateOptions{})

	require.NoError(t, err, "a blocked command is a result, not an error")
	assert.False(t, result.IsSafe)
	assert.Equal(t, "df -h", result.Command)
	assert.Equal(t, string(safety.CategoryDestructive), result.SafetyLevel)
	assert.Equal(t, "df", result.BlockedPattern)
}

func TestService_GenerateCommand_WithExplanation(t *testing.T) {
	service := newTestService(t, writeArtifacts(t))

	result, err := service.GenerateCommand(context.Background(), "list files", GenerateOptions{Explain: true})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Explanation)
}

func TestService_GenerateCommand_WithAlternatives(t *testing.T) {
	service := newTestService(t, writeArtifacts(t))

	result, err := service.GenerateCommand(context.Background(), "list files", GenerateOptions{Alternatives: 2})

	require.NoError(t, err)
	assert.NotContains(t, result.Alternatives, result.Command)
	assert.Contains(t, result.Alternatives, "ls -la")
}

func TestService_GenerateCommand_InputErrors(t *testing.T) {
	service := newTestService(t, writeArtifacts(t))

	t.Run("Empty Prompt", func(t *testing.T) {
		_, err := service.GenerateCommand(context.Background(), "  ", GenerateOptions{})
		assert.ErrorIs(t, err, safety.ErrEmptyInput)
	})

	t.Run("Control Characters", func(t *testing.T) {
		_, err := service.GenerateCommand(context.Background(), "list\x00files", GenerateOptions{})
		assert.ErrorIs(t, err, safety.ErrControlCharacter)
	})
}

func TestService_GenerateCommand_ModelLoadFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")
	cfg.Model.TokenizerPath = filepath.Join(t.TempDir(), "missing.json")
	service := newTestService(t, cfg)

	_, err := service.GenerateCommand(context.Background(), "list files", GenerateOptions{})

	assert.ErrorIs(t, err, infer.ErrArtifactMissing)
}

func TestService_GenerateCommand_UnrecognizedPrompt(t *testing.T) {
	service := newTestService(t, writeArtifacts(t))

	_, err := service.GenerateCommand(context.Background(), "interpretive dance routine", GenerateOptions{})

	assert.ErrorIs(t, err, infer.ErrUnrecognizedPrompt)
}

func TestService_GenerateAlternatives(t *testing.T) {
	service := newTestService(t, writeArtifacts(t))

	alternatives, err := service.GenerateAlternatives(context.Background(), "list files", 2)

	require.NoError(t, err)
	require.Len(t, alternatives, 2)
	assert.Equal(t, "ls", alternatives[0])
	assert.Contains(t, alternatives, "ls -la")
}

func TestService_ModelLoadsOnce(t *testing.T) {
	service := newTestService(t, writeArtifacts(t))
	assert.False(t, service.Ready())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.GenerateCommand(context.Background(), "list files", GenerateOptions{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, service.Ready())
}

func TestService_LoadFailureDoesNotPoisonRetries(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Model.ModelPath = filepath.Join(dir, "model.onnx")
	cfg.Model.TokenizerPath = filepath.Join(dir, "tokenizer.json")
	service := newTestService(t, cfg)

	_, err := service.GenerateCommand(context.Background(), "list files", GenerateOptions{})
	require.ErrorIs(t, err, infer.ErrArtifactMissing)

	// Put the artifacts in place and retry with the same service.
	require.NoError(t, os.WriteFile(cfg.Model.ModelPath, []byte("weights"), 0o644))
	require.NoError(t, os.WriteFile(cfg.Model.TokenizerPath, []byte(`{"vocab":{"ls":0}}`), 0o644))

	result, err := service.GenerateCommand(context.Background(), "list files", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ls", result.Command)
}
