package stigdata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/model"
)

func TestSampleDocumentsAreValid(t *testing.T) {
	docs := SampleDocuments()
	require.Len(t, docs, 2)

	for _, doc := range docs {
		assert.NoError(t, doc.Validate())
	}

	// RHEL 9 comes first and carries the richer control set.
	assert.Equal(t, "9", docs[0].RHELVersion)
	assert.Equal(t, 1, docs[0].Priority)
	assert.Len(t, docs[0].Controls, 4)
	assert.Equal(t, "8", docs[1].RHELVersion)
	assert.Len(t, docs[1].Controls, 2)
}

func TestWriteSamples(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stig_data")

	paths, err := WriteSamples(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	assert.Equal(t, filepath.Join(dir, "sample_rhel9_stig.json"), paths[0])
	assert.Equal(t, filepath.Join(dir, "sample_rhel8_stig.json"), paths[1])

	doc, err := model.ReadDocument(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "RHEL-9-STIG-V1R3", doc.Version)
	assert.Equal(t, "RHEL-09-211010", doc.Controls[0].ID)
	assert.Equal(t, model.SeverityHigh, doc.Controls[0].Severity)
}
