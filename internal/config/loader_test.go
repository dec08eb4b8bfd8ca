package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
	Env         map[string]string
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	if _, ok := m.Files[path]; !ok {
		return nil, os.ErrNotExist
	}
	return nil, nil
}

func (m *MockFileSystem) Getenv(key string) string {
	return m.Env[key]
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "model.onnx", cfg.Model.ModelPath)
	assert.Equal(t, "tokenizer.json", cfg.Model.TokenizerPath)
	assert.Equal(t, DefaultMaxPromptLength, cfg.Safety.MaxPromptLength)
	assert.Equal(t, DefaultMaxChatInputLength, cfg.Safety.MaxChatInputLength)
	assert.Equal(t, "gemini-1.5-flash", cfg.Chat.Model)
	assert.Equal(t, "https://libretranslate.com", cfg.Translate.BaseURL)
}

func TestLoad_UserConfigOverridesDefaults(t *testing.T) {
	userConfig := `{
		"model": {"model_path": "/opt/models/eidos.onnx"},
		"safety": {"max_prompt_length": 2000},
		"chat": {"model": "gemini-1.5-pro"}
	}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/eidos/config.json": []byte(userConfig),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/opt/models/eidos.onnx", cfg.Model.ModelPath)
	assert.Equal(t, 2000, cfg.Safety.MaxPromptLength)
	assert.Equal(t, "gemini-1.5-pro", cfg.Chat.Model)
	// Untouched keys keep their defaults.
	assert.Equal(t, "tokenizer.json", cfg.Model.TokenizerPath)
	assert.Equal(t, DefaultMaxChatInputLength, cfg.Safety.MaxChatInputLength)
}

func TestLoad_LocalConfigOverridesUserConfig(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/eidos/config.json": []byte(`{"model": {"model_path": "/user/model.onnx"}}`),
			"eidos.json":                           []byte(`{"model": {"model_path": "/local/model.onnx"}}`),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/local/model.onnx", cfg.Model.ModelPath)
}

func TestLoad_EnvOverridesEverything(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"eidos.json": []byte(`{"model": {"model_path": "/local/model.onnx"}}`),
		},
		Env: map[string]string{
			EnvModelPath:     "/env/model.onnx",
			EnvTokenizerPath: "/env/tokenizer.json",
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/env/model.onnx", cfg.Model.ModelPath)
	assert.Equal(t, "/env/tokenizer.json", cfg.Model.TokenizerPath)
}

func TestLoad_HomeDirUnavailable_UsesRemainingSources(t *testing.T) {
	fs := &MockFileSystem{
		HomeDirErr: errors.New("no home"),
		Files: map[string][]byte{
			"eidos.json": []byte(`{"safety": {"max_prompt_length": 500}}`),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Safety.MaxPromptLength)
}

// --- ERROR TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"eidos.json": []byte(`{not json`),
		},
	}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_PermissionError_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		Files:       map[string][]byte{"eidos.json": []byte(`{}`)},
		ReadFileErr: os.ErrPermission,
	}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load()

	require.Error(t, err)
}

func TestLoad_InvalidMergedConfig_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"eidos.json": []byte(`{"safety": {"max_prompt_length": -1}}`),
		},
	}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_prompt_length")
}
