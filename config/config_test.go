package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultParentFolderID, cfg.Drive.ParentFolderID)
	assert.Equal(t, DefaultSpreadsheetID, cfg.Sheets.SpreadsheetID)
	assert.Equal(t, 10*time.Second, cfg.Dedupe.Window)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.Empty(t, cfg.Database.DSN)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  port: 9000
database:
  dsn: "host=localhost user=test"
dedupe:
  window_seconds: 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "host=localhost user=test", cfg.Database.DSN)
	assert.Equal(t, 30*time.Second, cfg.Dedupe.Window)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=envhost user=env")
	t.Setenv("DRIVE_PARENT_FOLDER_ID", "env-folder")
	t.Setenv("SHEET_SPREADSHEET_ID", "env-sheet")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "host=envhost user=env", cfg.Database.DSN)
	assert.Equal(t, "env-folder", cfg.Drive.ParentFolderID)
	assert.Equal(t, "env-sheet", cfg.Sheets.SpreadsheetID)
}
