package mcp

import (
	"fmt"
	"time"
)

// Transport names.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds MCP server configuration.
type Config struct {
	// Transport selects the front-end: "stdio" (default) or "http".
	Transport string `json:"transport"`

	// Lazy starts the tool catalog in minimal mode; the full set is
	// advertised only after load_all_tools is called.
	Lazy bool `json:"lazy"`

	// TaskTimeout bounds how long wait_for_task polls before failing.
	TaskTimeout time.Duration `json:"taskTimeout"`

	// HTTPHost is the HTTP transport bind address.
	HTTPHost string `json:"httpHost"`

	// HTTPPort is the HTTP transport port.
	HTTPPort int `json:"httpPort"`

	// HTTPAuthToken, when set, requires "Authorization: Bearer <token>" on
	// every HTTP request.
	HTTPAuthToken string `json:"httpAuthToken"`

	// SessionTimeout is the idle timeout for HTTP sessions.
	SessionTimeout time.Duration `json:"sessionTimeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Transport:      TransportStdio,
		Lazy:           false,
		TaskTimeout:    5 * time.Minute,
		HTTPHost:       "127.0.0.1",
		HTTPPort:       8811,
		SessionTimeout: 30 * time.Minute,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("transport must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Transport)
	}

	if c.Transport == TransportHTTP {
		if c.HTTPPort < 1 || c.HTTPPort > 65535 {
			return fmt.Errorf("httpPort must be between 1 and 65535, got %d", c.HTTPPort)
		}
		if c.SessionTimeout < time.Second {
			return fmt.Errorf("sessionTimeout must be at least 1 second")
		}
	}

	if c.TaskTimeout < time.Second {
		return fmt.Errorf("taskTimeout must be at least 1 second")
	}

	return nil
}

// Address returns the HTTP listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}
