package server

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds HTTP server configuration parameters.
type Config struct {
	Host            string        // Interface to bind, empty for all
	Port            string        // Port number to listen on
	ReadTimeout     time.Duration // Maximum duration for reading the entire request
	WriteTimeout    time.Duration // Maximum duration for writing the response
	IdleTimeout     time.Duration // Maximum duration to wait for next request with keep-alives
	ShutdownTimeout time.Duration // Grace period for in-flight requests on shutdown
	MaxHeaderBytes  int           // Maximum size of request headers
}

// DefaultConfig returns the built-in server settings.
func DefaultConfig() Config {
	return Config{
		Port:            "8000",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxHeaderBytes:  1 << 20,
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Validate checks the port range and that no duration or size is negative.
func (c *Config) Validate() error {
	portNum, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port number: %s (must be numeric)", c.Port)
	}
	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("invalid port number: %s (must be between 1 and 65535)", c.Port)
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"read timeout", c.ReadTimeout},
		{"write timeout", c.WriteTimeout},
		{"idle timeout", c.IdleTimeout},
		{"shutdown timeout", c.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("invalid %s: %s (must not be negative)", d.name, d.d)
		}
	}
	if c.MaxHeaderBytes < 0 {
		return fmt.Errorf("invalid max header bytes: %d (must not be negative)", c.MaxHeaderBytes)
	}
	return nil
}
