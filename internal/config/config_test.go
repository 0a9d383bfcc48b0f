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
	path := filepath.Join(t.TempDir(), "scout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := writeConfig(t, `
api_key: k123
domain: acme.com
pages: 5
email_format: 3
bypass: http://localhost:8191
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "k123", cfg.APIKey)
	assert.Equal(t, "acme.com", cfg.Domain)
	assert.Equal(t, 5, cfg.Pages)
	assert.Equal(t, 3, cfg.EmailFormat)
	assert.Equal(t, "http://localhost:8191", cfg.Bypass)
}

func TestLoad_ExplicitMissingPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAMLErrors(t *testing.T) {
	path := writeConfig(t, "api_key: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ValidationRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "email_format: 42"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "proxy: not-a-url"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "source: serper"))
	assert.Error(t, err)
}

func TestResolveAPIKey_Precedence(t *testing.T) {
	cfg := &Config{APIKey: "from-file"}

	t.Setenv(EnvAPIKey, "from-env")
	assert.Equal(t, "from-flag", ResolveAPIKey("from-flag", cfg))
	assert.Equal(t, "from-env", ResolveAPIKey("", cfg))

	t.Setenv(EnvAPIKey, "")
	assert.Equal(t, "from-file", ResolveAPIKey("", cfg))
}

func TestStringOr(t *testing.T) {
	assert.Equal(t, "a", StringOr("a", "b"))
	assert.Equal(t, "b", StringOr("", "b"))
}

func TestIntOr(t *testing.T) {
	assert.Equal(t, 7, IntOr(7, 10))
	assert.Equal(t, 10, IntOr(0, 10))
}
