// Package config provides configuration management for the STIG RAG
// deployment tooling.
//
// Configuration is resolved from three layers, later layers winning:
//
//   - Built-in defaults
//   - The YAML config file (default /etc/stig-rag/stig-rag.yml, overridable
//     via STIG_RAG_CONFIG_PATH)
//   - STIG_RAG_* environment variables
//
// The effective configuration is rendered to the flat config.env file the
// service container consumes.
//
// # Key Configuration Options
//
//   - STIG_RAG_IMAGE: Container image reference
//   - STIG_RAG_PORT: Service listen port
//   - STIG_RAG_LLM_PROVIDER: LLM backend used by the service
//   - STIG_RAG_DEFAULT_RHEL_VERSION: RHEL version prioritized in answers
package config
