package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	stations, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, stations)

	names := make(map[string]bool)
	for _, s := range stations {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.NotZero(t, s.Lat)
		assert.NotZero(t, s.Lng)
		names[s.Name] = true
	}
	assert.True(t, names["สามชุก"])
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `substations:
  - id: "X-01"
    name: "ทดสอบ"
    lat: 13.5
    lng: 100.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	stations, err := Load(path)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "ทดสอบ", stations[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoadEmptyCatalogRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("substations: []\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
