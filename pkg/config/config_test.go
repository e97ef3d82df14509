package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STIG_RAG_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "stig-rag", cfg.ContainerName)
	assert.Equal(t, "9", cfg.DefaultRHELVersion)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, "default", cfg.Source("port"))
	assert.Equal(t, "default", cfg.Source("llm_provider"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
port: 9090
llm_provider: ollama
default_rhel_version: "8"
chunk_size: 500
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(configYAML), 0644))
	t.Setenv("STIG_RAG_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "ollama", cfg.LLMProvider)
	assert.Equal(t, "8", cfg.DefaultRHELVersion)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, "file", cfg.Source("port"))

	// Untouched attributes keep defaults
	assert.Equal(t, "stig-rag", cfg.ContainerName)
	assert.Equal(t, "default", cfg.Source("container_name"))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: 9090\n"), 0644))
	t.Setenv("STIG_RAG_CONFIG_PATH", dir)
	t.Setenv("STIG_RAG_PORT", "7070")
	t.Setenv("STIG_RAG_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "environment", cfg.Source("port"))
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "environment", cfg.Source("log_level"))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: [not a number\n"), 0644))
	t.Setenv("STIG_RAG_CONFIG_PATH", dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "zero port", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "overlap exceeds chunk size", mutate: func(c *Config) { c.ChunkOverlap = 2000 }, wantErr: true},
		{name: "rhel 7 not supported", mutate: func(c *Config) { c.DefaultRHELVersion = "7" }, wantErr: true},
		{name: "unknown llm provider", mutate: func(c *Config) { c.LLMProvider = "skynet" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
		{name: "zero top k", mutate: func(c *Config) { c.RetrievalTopK = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatText(t *testing.T) {
	t.Setenv("STIG_RAG_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	out := cfg.FormatText()
	assert.Contains(t, out, "llm_provider")
	assert.Contains(t, out, "huggingface")
	assert.Contains(t, out, "default")
}

func TestFormatJSON(t *testing.T) {
	t.Setenv("STIG_RAG_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "default_rhel_version"`)
	assert.Contains(t, out, `"value": "9"`)
}
