package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/stig-rag"
	ConfigFileName    = "stig-rag.yml"
)

// ValidLLMProviders is the list of LLM backends the service understands.
var ValidLLMProviders = []string{"huggingface", "openai", "ollama"}

// ValidLogLevels is the list of log levels the service accepts.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all deployment and service configuration settings.
type Config struct {
	// Image is the container image reference for the service
	Image string `yaml:"image" json:"image"`

	// ContainerName is the name given to the service container
	ContainerName string `yaml:"container_name" json:"container_name"`

	// DataVolume is the podman volume holding STIG data and the vector store
	DataVolume string `yaml:"data_volume" json:"data_volume"`

	// BindAddress is the address the service binds inside the container
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the host port published for the service
	Port int `yaml:"port" json:"port"`

	// LLMProvider selects the language-model backend
	LLMProvider string `yaml:"llm_provider" json:"llm_provider"`

	// LLMModel is the model identifier passed to the provider
	LLMModel string `yaml:"llm_model" json:"llm_model"`

	// EmbeddingModel is the sentence-embedding model identifier
	EmbeddingModel string `yaml:"embedding_model" json:"embedding_model"`

	// ChunkSize is the document chunk size in characters
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`

	// ChunkOverlap is the overlap between adjacent chunks in characters
	ChunkOverlap int `yaml:"chunk_overlap" json:"chunk_overlap"`

	// RetrievalTopK is the number of chunks retrieved per query
	RetrievalTopK int `yaml:"retrieval_top_k" json:"retrieval_top_k"`

	// DefaultRHELVersion is the RHEL version prioritized in answers ("9" or "8")
	DefaultRHELVersion string `yaml:"default_rhel_version" json:"default_rhel_version"`

	// DataDir is the STIG data directory inside the container
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// VectorDBDir is the vector store directory inside the container
	VectorDBDir string `yaml:"vector_db_dir" json:"vector_db_dir"`

	// LogLevel is the service log level
	LogLevel string `yaml:"log_level" json:"log_level"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		Image:              "localhost/stig-rag:latest",
		ContainerName:      "stig-rag",
		DataVolume:         "stig-rag-data",
		BindAddress:        "0.0.0.0",
		Port:               8000,
		LLMProvider:        "huggingface",
		LLMModel:           "microsoft/DialoGPT-medium",
		EmbeddingModel:     "all-MiniLM-L6-v2",
		ChunkSize:          1000,
		ChunkOverlap:       200,
		RetrievalTopK:      5,
		DefaultRHELVersion: "9",
		DataDir:            "/opt/stig-rag/data",
		VectorDBDir:        "/opt/stig-rag/chroma",
		LogLevel:           "info",
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// Determine config file path
	configPath := os.Getenv("STIG_RAG_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	// Try to load from config file
	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	// Override with environment variables
	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"image", "container_name", "data_volume", "bind_address", "port",
		"llm_provider", "llm_model", "embedding_model", "chunk_size",
		"chunk_overlap", "retrieval_top_k", "default_rhel_version",
		"data_dir", "vector_db_dir", "log_level",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.Image != "" {
		c.Image = file.Image
		c.sources["image"] = "file"
	}
	if file.ContainerName != "" {
		c.ContainerName = file.ContainerName
		c.sources["container_name"] = "file"
	}
	if file.DataVolume != "" {
		c.DataVolume = file.DataVolume
		c.sources["data_volume"] = "file"
	}
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.LLMProvider != "" {
		c.LLMProvider = file.LLMProvider
		c.sources["llm_provider"] = "file"
	}
	if file.LLMModel != "" {
		c.LLMModel = file.LLMModel
		c.sources["llm_model"] = "file"
	}
	if file.EmbeddingModel != "" {
		c.EmbeddingModel = file.EmbeddingModel
		c.sources["embedding_model"] = "file"
	}
	if file.ChunkSize != 0 {
		c.ChunkSize = file.ChunkSize
		c.sources["chunk_size"] = "file"
	}
	if file.ChunkOverlap != 0 {
		c.ChunkOverlap = file.ChunkOverlap
		c.sources["chunk_overlap"] = "file"
	}
	if file.RetrievalTopK != 0 {
		c.RetrievalTopK = file.RetrievalTopK
		c.sources["retrieval_top_k"] = "file"
	}
	if file.DefaultRHELVersion != "" {
		c.DefaultRHELVersion = file.DefaultRHELVersion
		c.sources["default_rhel_version"] = "file"
	}
	if file.DataDir != "" {
		c.DataDir = file.DataDir
		c.sources["data_dir"] = "file"
	}
	if file.VectorDBDir != "" {
		c.VectorDBDir = file.VectorDBDir
		c.sources["vector_db_dir"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("STIG_RAG_IMAGE"); val != "" {
		c.Image = val
		c.sources["image"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_CONTAINER_NAME"); val != "" {
		c.ContainerName = val
		c.sources["container_name"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_DATA_VOLUME"); val != "" {
		c.DataVolume = val
		c.sources["data_volume"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("STIG_RAG_LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
		c.sources["llm_provider"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_LLM_MODEL"); val != "" {
		c.LLMModel = val
		c.sources["llm_model"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_EMBEDDING_MODEL"); val != "" {
		c.EmbeddingModel = val
		c.sources["embedding_model"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_CHUNK_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ChunkSize = i
			c.sources["chunk_size"] = "environment"
		}
	}
	if val := os.Getenv("STIG_RAG_CHUNK_OVERLAP"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ChunkOverlap = i
			c.sources["chunk_overlap"] = "environment"
		}
	}
	if val := os.Getenv("STIG_RAG_RETRIEVAL_TOP_K"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RetrievalTopK = i
			c.sources["retrieval_top_k"] = "environment"
		}
	}
	if val := os.Getenv("STIG_RAG_DEFAULT_RHEL_VERSION"); val != "" {
		c.DefaultRHELVersion = val
		c.sources["default_rhel_version"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_DATA_DIR"); val != "" {
		c.DataDir = val
		c.sources["data_dir"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_VECTOR_DB_DIR"); val != "" {
		c.VectorDBDir = val
		c.sources["vector_db_dir"] = "environment"
	}
	if val := os.Getenv("STIG_RAG_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// BaseURL returns the URL the published service answers on.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be smaller than chunk_size (%d >= %d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.RetrievalTopK < 1 {
		return fmt.Errorf("retrieval_top_k must be positive, got %d", c.RetrievalTopK)
	}

	if c.DefaultRHELVersion != "8" && c.DefaultRHELVersion != "9" {
		return fmt.Errorf("invalid default_rhel_version: %s (must be 8 or 9)", c.DefaultRHELVersion)
	}

	valid := false
	for _, p := range ValidLLMProviders {
		if c.LLMProvider == p {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid llm_provider: %s (valid: %s)", c.LLMProvider, strings.Join(ValidLLMProviders, ", "))
	}

	valid = false
	for _, l := range ValidLogLevels {
		if c.LogLevel == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log_level: %s (valid: %s)", c.LogLevel, strings.Join(ValidLogLevels, ", "))
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "image", Value: c.Image, Source: c.Source("image")},
		{Name: "container_name", Value: c.ContainerName, Source: c.Source("container_name")},
		{Name: "data_volume", Value: c.DataVolume, Source: c.Source("data_volume")},
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "llm_provider", Value: c.LLMProvider, Source: c.Source("llm_provider")},
		{Name: "llm_model", Value: c.LLMModel, Source: c.Source("llm_model")},
		{Name: "embedding_model", Value: c.EmbeddingModel, Source: c.Source("embedding_model")},
		{Name: "chunk_size", Value: strconv.Itoa(c.ChunkSize), Source: c.Source("chunk_size")},
		{Name: "chunk_overlap", Value: strconv.Itoa(c.ChunkOverlap), Source: c.Source("chunk_overlap")},
		{Name: "retrieval_top_k", Value: strconv.Itoa(c.RetrievalTopK), Source: c.Source("retrieval_top_k")},
		{Name: "default_rhel_version", Value: c.DefaultRHELVersion, Source: c.Source("default_rhel_version")},
		{Name: "data_dir", Value: c.DataDir, Source: c.Source("data_dir")},
		{Name: "vector_db_dir", Value: c.VectorDBDir, Source: c.Source("vector_db_dir")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
