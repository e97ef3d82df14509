package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvMap returns the flat environment the service container consumes.
// These are the keys the application reads; the STIG_RAG_* variables that
// configure this tooling are a separate namespace.
func (c *Config) EnvMap() map[string]string {
	return map[string]string{
		"APP_PORT":             strconv.Itoa(c.Port),
		"BIND_ADDRESS":         c.BindAddress,
		"LLM_PROVIDER":         c.LLMProvider,
		"LLM_MODEL":            c.LLMModel,
		"EMBEDDING_MODEL":      c.EmbeddingModel,
		"CHUNK_SIZE":           strconv.Itoa(c.ChunkSize),
		"CHUNK_OVERLAP":        strconv.Itoa(c.ChunkOverlap),
		"RETRIEVAL_TOP_K":      strconv.Itoa(c.RetrievalTopK),
		"DEFAULT_RHEL_VERSION": c.DefaultRHELVersion,
		"STIG_DATA_DIR":        c.DataDir,
		"VECTOR_DB_DIR":        c.VectorDBDir,
		"LOG_LEVEL":            c.LogLevel,
	}
}

// WriteEnvFile renders the effective configuration to a config.env file at
// the given path, creating parent directories as needed.
func (c *Config) WriteEnvFile(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create env file directory: %w", err)
		}
	}

	if err := godotenv.Write(c.EnvMap(), path); err != nil {
		return fmt.Errorf("failed to write env file %s: %w", path, err)
	}
	return nil
}

// ReadEnvFile loads a previously rendered config.env. Used to show what a
// running deployment was started with.
func ReadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return env, nil
}

// DiffEnv compares a rendered env file against the current configuration
// and returns the keys whose values differ (including keys missing from
// the file). An empty result means the deployment is up to date.
func (c *Config) DiffEnv(existing map[string]string) []string {
	var changed []string
	for key, want := range c.EnvMap() {
		if got, ok := existing[key]; !ok || got != want {
			changed = append(changed, key)
		}
	}
	sort.Strings(changed)
	return changed
}
