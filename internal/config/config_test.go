package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_Values(t *testing.T) {
	path := writeConfig(t, `
[generate]
category = "pin6"
count = 250
preview-limit = 50
output-dir = "/tmp/out"

[server]
port = "9000"
max-count = 5000
rate-limit = 20
rate-burst = 40
trust-proxy = true
max-body-bytes = 4096
read-timeout = "5s"

[storage]
history = false
db-path = "/tmp/history.db"

[log]
level = "debug"
format = "json"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Generate.Category)
	assert.Equal(t, "pin6", *cfg.Generate.Category)
	assert.Equal(t, 250, *cfg.Generate.Count)
	assert.Equal(t, 50, *cfg.Generate.PreviewLimit)
	assert.Equal(t, "/tmp/out", *cfg.Generate.OutputDir)

	assert.Equal(t, "9000", *cfg.Server.Port)
	assert.Equal(t, 5000, *cfg.Server.MaxCount)
	assert.Equal(t, 20, *cfg.Server.RateLimit)
	assert.Equal(t, 40, *cfg.Server.RateBurst)
	assert.True(t, *cfg.Server.TrustProxy)
	assert.Equal(t, int64(4096), *cfg.Server.MaxBodyBytes)
	assert.Equal(t, "5s", *cfg.Server.ReadTimeout)
	assert.Nil(t, cfg.Server.WriteTimeout)

	assert.False(t, *cfg.Storage.History)
	assert.Equal(t, "/tmp/history.db", *cfg.Storage.DBPath)

	assert.Equal(t, "debug", *cfg.Log.Level)
	assert.Equal(t, "json", *cfg.Log.Format)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax error", "[generate\ncount = 1"},
		{"wrong type", "[generate]\ncount = \"many\""},
		{"unknown key", "[generate]\ncolour = \"red\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestTemplate(t *testing.T) {
	out := Template(Defaults{
		Category:     "password",
		Count:        100,
		PreviewLimit: 1000,
		OutputDir:    ".",
		Port:         "8000",
		MaxCount:     100000,
		RateLimit:    10,
		RateBurst:    20,
	})

	assert.Contains(t, out, "[generate]")
	assert.Contains(t, out, `# category = "password"`)
	assert.Contains(t, out, "# max-count = 100000")

	// Uncommenting every line must yield a loadable config.
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimPrefix(line, "# ")
		if strings.Contains(trimmed, " = ") {
			lines = append(lines, trimmed)
			continue
		}
		if strings.HasPrefix(line, "[") {
			lines = append(lines, line)
		}
	}
	var cfg FileConfig
	_, err := toml.Decode(strings.Join(lines, "\n"), &cfg)
	require.NoError(t, err)
	assert.Equal(t, "password", *cfg.Generate.Category)
	assert.Equal(t, "human", *cfg.Log.Format)
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")

	assert.Equal(t, filepath.Join("/cfg", "genpass", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "genpass", "history.db"), DefaultDBPath())
}
