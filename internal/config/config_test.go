package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	content := `
server:
  addr: ":9000"
storage:
  type: memory
notifications:
  schedule: "@every 5s"
calendar:
  weekfirstday: monday
db:
  port: 6543
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("AGENDA_DB_HOST", "db.internal")
	t.Setenv("AGENDA_NOTIFICATIONS_ENABLED", "false")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, "@every 5s", cfg.Notifications.Schedule)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)

	weekStart, err := cfg.Calendar.WeekStart()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, weekStart)
}

func TestLoad_Invalid(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	t.Run("remote storage without url", func(t *testing.T) {
		t.Setenv("AGENDA_STORAGE_TYPE", "remote")
		_, err := Load(missing)
		assert.ErrorContains(t, err, "remoteurl")
	})

	t.Run("unknown storage", func(t *testing.T) {
		t.Setenv("AGENDA_STORAGE_TYPE", "floppy")
		_, err := Load(missing)
		assert.Error(t, err)
	})

	t.Run("bad week day", func(t *testing.T) {
		t.Setenv("AGENDA_CALENDAR_WEEKFIRSTDAY", "funday")
		_, err := Load(missing)
		assert.ErrorContains(t, err, "weekfirstday")
	})
}
