package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(nil, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, "session.db", cfg.SessionDB)
	assert.Equal(t, "exports", cfg.ExportDir)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.S3.LinkExpiry)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "https://json.example/v1",
		"page_size": 7,
		"export_dir": "json-exports",
		"request_timeout": "3s",
		"s3": {"bucket": "json-bucket", "link_expiry": "1h"}
	}`), 0o600))

	env := envMap(map[string]string{
		"OCEANTIC_EXPORT_DIR": "env-exports",
		"OCEANTIC_PAGE_SIZE":  "9",
	})
	cfg, err := LoadConfig([]string{"-c", path, "-p", "11", "-unknown", "x"}, env)
	require.NoError(t, err)

	assert.Equal(t, "https://json.example/v1", cfg.APIBaseURL)
	assert.Equal(t, "env-exports", cfg.ExportDir)
	assert.Equal(t, 11, cfg.PageSize)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json-bucket", cfg.S3.Bucket)
	assert.Equal(t, time.Hour, cfg.S3.LinkExpiry)
	assert.Equal(t, "event-books", cfg.S3.Prefix)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte(
		"OCEANTIC_API_URL=https://dotenv.example/v1\nOCEANTIC_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := LoadConfig(nil, envMap(map[string]string{"OCEANTIC_LOG_LEVEL": "warn"}))
	require.NoError(t, err)

	assert.Equal(t, "https://dotenv.example/v1", cfg.APIBaseURL)
	assert.Equal(t, "warn", cfg.LogLevel, "process env wins over .env")
}

func TestLoadConfig_NamedEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "staging.env")
	require.NoError(t, os.WriteFile(path, []byte("OCEANTIC_S3_BUCKET=staging\n"), 0o600))

	cfg, err := LoadConfig(nil, envMap(map[string]string{"OCEANTIC_ENV_FILE": path}))
	require.NoError(t, err)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "staging", cfg.S3.Bucket)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "missing file", args: []string{"-config", "nope.json"}},
		{name: "bad page size env", env: map[string]string{"OCEANTIC_PAGE_SIZE": "many"}},
		{name: "bad timeout env", env: map[string]string{"OCEANTIC_REQUEST_TIMEOUT": "soon"}},
		{name: "relative base url", args: []string{"-a", "/oceantic/v1"}},
		{name: "zero page size", args: []string{"-p", "0"}},
		{name: "unknown log level", args: []string{"-l", "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.args, envMap(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	assert.Error(t, parseJSON(cfg, []string{"-c", path}))
}
