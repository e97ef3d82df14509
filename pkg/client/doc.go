// Package client is the HTTP client for the RHEL STIG RAG service.
//
// The service exposes four endpoints: GET /health, POST /query,
// POST /load-stig and GET /search/{stig_id}. This package provides typed
// wrappers for each plus a readiness poll used by the deployment flow.
package client
