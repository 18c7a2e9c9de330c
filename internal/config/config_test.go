package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("DATASET_PATH", "")

	path := writeConfig(t, `
server:
  port: 9090
  apiKeys:
    ops: secret
openai:
  apiKey: from-file
  timeout: 3s
dataset:
  source: postgres
  table: earnings
database:
  host: db
  port: 5432
  user: app
  password: pw
  name: analytics
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, map[string]string{"ops": "secret"}, cfg.Server.APIKeys)
	assert.Equal(t, "from-file", cfg.OpenAI.APIKey)
	assert.Equal(t, 3*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, "gpt-4", cfg.OpenAI.Model)
	assert.Equal(t, SourcePostgres, cfg.Dataset.Source)
	assert.Equal(t, "earnings", cfg.Dataset.Table)
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=analytics sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, "app:pw@tcp(db:5432)/analytics?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}

func TestLoad_MissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("DATASET_PATH", "/data/earnings.csv")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 15*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, SourceCSV, cfg.Dataset.Source)
	assert.Equal(t, "/data/earnings.csv", cfg.Dataset.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DATASET_PATH", "")

	_, err := Load(writeConfig(t, "dataset:\n  source: excel\n"))
	assert.ErrorContains(t, err, "dataset.source")

	_, err = Load(writeConfig(t, "server: [not, a, map]\n"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "freelancer_earnings_bd.csv", cfg.Dataset.Path)
}
