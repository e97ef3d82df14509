// Package stubserver provides a lightweight stand-in for the STIG RAG
// service API.
//
// The stub serves the same HTTP surface as the real service so that
// deployment tooling, health checks, and client integrations can be
// exercised without a model backend. Answers come from keyword matching
// over an in-memory control store instead of retrieval-augmented
// generation.
//
// # Server Setup
//
//	store := stubserver.NewStore()
//	store.AddDocument(doc)
//	srv := stubserver.NewServer(store, "0.0.0.0", "8000")
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
//   - GET /health - readiness probe
//   - POST /query - answer a question from loaded STIG controls
//   - POST /load-stig - ingest a STIG document from a local path
//   - GET /search/{stig_id} - look up controls by STIG identifier
package stubserver
