package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simtrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_host: filehost
db_name: fromfile
token_ttl: 2h
allowed_origins: "https://a.example, https://b.example"
max_attachment_mb: 5
`), 0o600))

	t.Setenv("SIMTRACK_CONFIG", path)
	t.Setenv("DB_NAME", "fromenv")
	t.Setenv("DEFAULT_HISTORY_LIMIT", "not-a-number")

	LoadConfig()

	assert.Equal(t, "filehost", DbHost)
	assert.Equal(t, "fromenv", DbName)
	assert.Equal(t, 2*time.Hour, TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AllowedOrigins)
	assert.Equal(t, int64(5)<<20, MaxAttachmentSize)
	assert.Equal(t, 50, DefaultHistoryLimit)
	assert.Contains(t, DSN(), "dbname=fromenv")
}

func TestLoadConfig_MissingFileFallsBack(t *testing.T) {
	t.Setenv("SIMTRACK_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("APP_ENV", "production")

	LoadConfig()

	assert.Equal(t, "5432", DbPort)
	assert.True(t, IsProduction)
}
