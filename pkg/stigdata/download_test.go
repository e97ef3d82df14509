package stigdata

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zipArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestSourceNames(t *testing.T) {
	assert.Equal(t, []string{"rhel9", "rhel8"}, SourceNames())
}

func TestDownload(t *testing.T) {
	archive := zipArchive(t, map[string]string{"U_RHEL_9_STIG-xccdf.xml": "<Benchmark/>"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer server.Close()

	original := Sources["rhel9"]
	defer func() { Sources["rhel9"] = original }()
	patched := original
	patched.URL = server.URL
	Sources["rhel9"] = patched

	outDir := t.TempDir()
	path, err := NewDownloader().Download(context.Background(), "rhel9", outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "rhel9_stig.zip"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, archive, data)
}

func TestDownloadUnknownSource(t *testing.T) {
	_, err := NewDownloader().Download(context.Background(), "rhel7", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown STIG source")
}

func TestDownloadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	original := Sources["rhel8"]
	defer func() { Sources["rhel8"] = original }()
	patched := original
	patched.URL = server.URL
	Sources["rhel8"] = patched

	_, err := NewDownloader().Download(context.Background(), "rhel8", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "rhel9_stig.zip")
	archive := zipArchive(t, map[string]string{
		"U_RHEL_9_STIG-xccdf.xml": "<Benchmark/>",
		"readme.txt":              "manual STIG",
	})
	require.NoError(t, os.WriteFile(zipPath, archive, 0644))

	xmlFiles, err := Extract(zipPath)
	require.NoError(t, err)
	require.Len(t, xmlFiles, 1)
	assert.Equal(t, filepath.Join(dir, "rhel9_stig", "U_RHEL_9_STIG-xccdf.xml"), xmlFiles[0])

	content, err := os.ReadFile(xmlFiles[0])
	require.NoError(t, err)
	assert.Equal(t, "<Benchmark/>", string(content))
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")
	archive := zipArchive(t, map[string]string{"../escape.xml": "nope"})
	require.NoError(t, os.WriteFile(zipPath, archive, 0644))

	_, err := Extract(zipPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes extraction directory")
}
