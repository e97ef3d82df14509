package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "timestamp": "2024-01-01T00:00:00"})
	}))
	defer server.Close()

	health, err := New(server.URL).Health(context.Background())
	require.NoError(t, err)
	assert.True(t, health.Healthy())
}

func TestQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "how do I enable gpgcheck?", req.Question)
		assert.Equal(t, "9", req.RHELVersion)

		_ = json.NewEncoder(w).Encode(QueryResponse{
			Answer:           "Set gpgcheck=1 in /etc/dnf/dnf.conf",
			RHELVersionFocus: "9",
			Sources: []Source{
				{Content: "STIG ID: RHEL-09-211010", Metadata: map[string]interface{}{"stig_id": "RHEL-09-211010"}},
			},
			Query: "Question about RHEL 9: how do I enable gpgcheck?",
		})
	}))
	defer server.Close()

	result, err := New(server.URL).Query(context.Background(), "how do I enable gpgcheck?", "", "9")
	require.NoError(t, err)
	assert.Equal(t, "9", result.RHELVersionFocus)
	assert.Contains(t, result.Answer, "gpgcheck=1")
	assert.Len(t, result.Sources, 1)
}

func TestLoadSTIGSendsAbsolutePath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/load-stig", r.URL.Path)
		require.NoError(t, r.ParseForm())

		path := r.PostForm.Get("file_path")
		assert.True(t, len(path) > 0 && path[0] == '/', "expected absolute path, got %q", path)

		_ = json.NewEncoder(w).Encode(LoadResponse{Message: "Successfully loaded 4 STIG controls", ChunksCreated: 12})
	}))
	defer server.Close()

	result, err := New(server.URL).LoadSTIG(context.Background(), "stig_data/sample_rhel9_stig.json")
	require.NoError(t, err)
	assert.Equal(t, 12, result.ChunksCreated)
}

func TestSearchByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/RHEL-09-211010", r.URL.Path)
		_ = json.NewEncoder(w).Encode(SearchResponse{
			StigID:  "RHEL-09-211010",
			Results: []Source{{Content: "STIG ID: RHEL-09-211010"}},
		})
	}))
	defer server.Close()

	result, err := New(server.URL).SearchByID(context.Background(), "RHEL-09-211010")
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
}

func TestErrorResponsesSurfaceBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"File not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(server.URL).LoadSTIG(context.Background(), "/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "File not found")
}

func TestWaitReady(t *testing.T) {
	t.Run("succeeds once service is healthy", func(t *testing.T) {
		var attempts int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts < 3 {
				http.Error(w, "starting", http.StatusServiceUnavailable)
				return
			}
			_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
		}))
		defer server.Close()

		var progress int
		err := New(server.URL).WaitReady(context.Background(), 10, time.Millisecond, func() { progress++ })
		require.NoError(t, err)
		assert.Equal(t, 2, progress)
	})

	t.Run("fails after retries exhausted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "starting", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		err := New(server.URL).WaitReady(context.Background(), 3, time.Millisecond, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not ready after 3 attempts")
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "starting", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := New(server.URL).WaitReady(ctx, 100, time.Second, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
