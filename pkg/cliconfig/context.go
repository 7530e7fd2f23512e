package cliconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ContextConfigFileName is the name of the context configuration file.
const ContextConfigFileName = "contexts.json"

// ContextConfigVersion is the current version of the context config schema.
const ContextConfigVersion = 1

// ContextConfig holds the user's saved cluster connections. This is stored
// separately from Settings so switching clusters does not touch server
// settings like transport or logging.
type ContextConfig struct {
	// Version is the config schema version for future migrations
	Version int `json:"version"`

	// CurrentContext is the name of the currently active context
	CurrentContext string `json:"currentContext"`

	// Contexts maps context names to their cluster connection
	Contexts map[string]*Context `json:"contexts"`
}

// Context represents a named Proxmox cluster connection. Similar to kubectl
// contexts - allows quick switching between clusters (homelab, staging, etc.)
type Context struct {
	// Host is the Proxmox VE host (e.g., "192.168.1.10")
	Host string `json:"host"`

	// Port is the API port (0 = default 8006)
	Port int `json:"port,omitempty"`

	// User is the Proxmox user (e.g., "root@pam")
	User string `json:"user,omitempty"`

	// TokenName is the API token name for this cluster
	TokenName string `json:"tokenName,omitempty"`

	// TokenValue is the API token value
	TokenValue string `json:"tokenValue,omitempty"`

	// Insecure skips TLS certificate verification (for self-signed certs)
	Insecure bool `json:"insecure,omitempty"`

	// Description is an optional human-readable description
	Description string `json:"description,omitempty"`
}

// GetContextConfigPath returns the path to the context config file.
func GetContextConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(configDir, GlobalConfigDir, ContextConfigFileName), nil
}

// LoadContextConfig loads the context configuration from disk.
// If the file doesn't exist, returns an empty configuration.
func LoadContextConfig() (*ContextConfig, error) {
	cfg := &ContextConfig{
		Version:  ContextConfigVersion,
		Contexts: make(map[string]*Context),
	}

	path, err := GetContextConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read context config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{
			Path:    path,
			Message: fmt.Sprintf("invalid JSON: %s", err.Error()),
		}
	}
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}

	return cfg, nil
}

// SaveContextConfig saves the context configuration to disk.
func SaveContextConfig(cfg *ContextConfig) error {
	path, err := GetContextConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode context config: %w", err)
	}

	// Contexts can hold token values, keep the file private.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write context config: %w", err)
	}

	return nil
}

// GetCurrentContext returns the currently active context.
// Returns nil if no context is set or the context doesn't exist.
func (c *ContextConfig) GetCurrentContext() *Context {
	if c.CurrentContext == "" {
		return nil
	}
	return c.Contexts[c.CurrentContext]
}

// SetCurrentContext switches to the named context.
// Returns an error if the context doesn't exist.
func (c *ContextConfig) SetCurrentContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	c.CurrentContext = name
	return nil
}

// AddContext adds a new context with the given name.
// Returns an error if a context with that name already exists.
func (c *ContextConfig) AddContext(name string, ctx *Context) error {
	if _, exists := c.Contexts[name]; exists {
		return fmt.Errorf("context already exists: %s", name)
	}
	if c.Contexts == nil {
		c.Contexts = make(map[string]*Context)
	}
	c.Contexts[name] = ctx
	return nil
}

// RemoveContext removes a context by name.
// Returns an error if the context doesn't exist or is the current context.
func (c *ContextConfig) RemoveContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	if c.CurrentContext == name {
		return errors.New("cannot remove current context; switch to another context first")
	}
	delete(c.Contexts, name)
	return nil
}

// ApplyContext overlays the current context's connection values onto the
// settings. Only values the settings do not already carry from a higher
// priority source (env, flags) are filled in.
func ApplyContext(cfg *Settings) {
	ctxCfg, err := LoadContextConfig()
	if err != nil {
		return
	}
	ctx := ctxCfg.GetCurrentContext()
	if ctx == nil {
		return
	}

	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}
	fromFileOrDefault := func(key string) bool {
		src := cfg.Sources[key]
		return src == "" || src == SourceDefault
	}

	if ctx.Host != "" && fromFileOrDefault("host") {
		cfg.Host = ctx.Host
		cfg.Sources["host"] = SourceGlobal
	}
	if ctx.Port != 0 && fromFileOrDefault("port") {
		cfg.Port = ctx.Port
		cfg.Sources["port"] = SourceGlobal
	}
	if ctx.User != "" && fromFileOrDefault("user") {
		cfg.User = ctx.User
		cfg.Sources["user"] = SourceGlobal
	}
	if ctx.TokenName != "" && fromFileOrDefault("tokenName") {
		cfg.TokenName = ctx.TokenName
		cfg.Sources["tokenName"] = SourceGlobal
	}
	if ctx.TokenValue != "" && fromFileOrDefault("tokenValue") {
		cfg.TokenValue = ctx.TokenValue
		cfg.Sources["tokenValue"] = SourceGlobal
	}
	if ctx.Insecure && fromFileOrDefault("insecure") {
		cfg.Insecure = true
		cfg.Sources["insecure"] = SourceGlobal
	}
}
