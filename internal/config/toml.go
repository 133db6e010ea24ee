package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generate GenerateConfig `toml:"generate"`
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

// GenerateConfig maps generation defaults.
type GenerateConfig struct {
	Category     *string `toml:"category"`
	Count        *int    `toml:"count"`
	PreviewLimit *int    `toml:"preview-limit"`
	OutputDir    *string `toml:"output-dir"`
}

// ServerConfig maps web host settings.
type ServerConfig struct {
	Port           *string `toml:"port"`
	MaxCount       *int    `toml:"max-count"`
	RateLimit      *int    `toml:"rate-limit"`
	RateBurst      *int    `toml:"rate-burst"`
	TrustProxy     *bool   `toml:"trust-proxy"`
	MaxBodyBytes   *int64  `toml:"max-body-bytes"`
	ReadTimeout    *string `toml:"read-timeout"`
	WriteTimeout   *string `toml:"write-timeout"`
	IdleTimeout    *string `toml:"idle-timeout"`
	EnableAdmin    *bool   `toml:"admin"`
	UseHTTPS       *bool   `toml:"https"`
	RequestTimeout *string `toml:"request-timeout"`
}

// StorageConfig maps generation history settings.
type StorageConfig struct {
	DBPath  *string `toml:"db-path"`
	History *bool   `toml:"history"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template returns a commented default config file.
func Template(defaults Defaults) string {
	return fmt.Sprintf(`# genpass configuration
# Uncomment a value to enable it. CLI flags override config values.

[generate]
# category = %q        # username, password, passwordspecial, pin4, pin6, pin12
# count = %d                # Items per run
# preview-limit = %d      # Items kept in the preview
# output-dir = %q          # Directory for saved files

[server]
# port = %q
# max-count = %d       # Largest count accepted from the web page
# rate-limit = %d           # Requests per second per client
# rate-burst = %d
# trust-proxy = false       # Read client IP from X-Forwarded-For / X-Real-IP
# admin = true              # Serve the history dashboard
# https = false             # Mark admin cookies Secure

[storage]
# history = true            # Record generation metadata (never the items)
# db-path = %q

[log]
# level = "info"            # debug, info, warn, error
# format = "human"          # human, text, json
`,
		defaults.Category,
		defaults.Count,
		defaults.PreviewLimit,
		defaults.OutputDir,
		defaults.Port,
		defaults.MaxCount,
		defaults.RateLimit,
		defaults.RateBurst,
		DefaultDBPath(),
	)
}

// Defaults are the built-in values shown in Template.
type Defaults struct {
	Category     string
	Count        int
	PreviewLimit int
	OutputDir    string
	Port         string
	MaxCount     int
	RateLimit    int
	RateBurst    int
}
