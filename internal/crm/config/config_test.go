package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
HTTP_PORT: 8080
DB_HOST: localhost
DB_PORT: 5432
DB_USER: crm
DB_PASSWORD: crm
DB_NAME: crm
DB_SSLMODE: disable
KAFKA_BROKERS:
  - localhost:9092
TOPIC: crm-events
CONSUMER_GROUP: crm-audit
JWT_SECRET: file-secret
LOGIN_USER: ops
LOGIN_PASSWORD: pw
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "crm-audit", cfg.ConsumerGroup)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, 5, cfg.LoginMaxAttempts, "limiter settings default when omitted")
	assert.Equal(t, 900, cfg.LoginWindowSeconds)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
DB_HOST: from-file
DB_PASSWORD: from-file
JWT_SECRET: from-file
`)

	t.Setenv("CRM_DB_PASSWORD", "from-env")
	t.Setenv("CRM_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.DBHost, "untouched keys keep the file value")
	assert.Equal(t, "from-env", cfg.DBPassword)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "HTTP_PORT: [not an int")
	_, err := Load(path)
	assert.Error(t, err)
}
