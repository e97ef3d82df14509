// Package main implements stigragctl, the deployment CLI for the RHEL STIG
// RAG service.
//
// stigragctl wraps podman to build, deploy, and manage the containerized
// service, detects host compatibility quirks (cgroups version, SELinux,
// rootless), renders the service configuration, and generates systemd
// Quadlet units for boot-time management.
//
// # Quick Start
//
//	# Build the service image from a Containerfile
//	stigragctl build
//
//	# Deploy: create the data volume, start the container, wait for health
//	stigragctl deploy
//
//	# Check deployment status and service health
//	stigragctl status
//
//	# Ask a question
//	stigragctl query "How do I configure SSH on RHEL 9?"
//
// # Environment Variables
//
//   - STIG_RAG_CONFIG_PATH: Directory containing stig-rag.yml (default: /etc/stig-rag)
//   - STIG_RAG_IMAGE: Container image reference
//   - STIG_RAG_CONTAINER_NAME: Service container name
//   - STIG_RAG_PORT: Published host port (default: 8000)
//   - STIG_RAG_DATA_VOLUME: Podman volume for STIG data and the vector store
//   - STIG_RAG_LOG_LEVEL: Service log level (debug, info, warn, error)
//
// Configuration precedence is environment over config file over defaults;
// run "stigragctl configuration show" to see effective values and sources.
package main
