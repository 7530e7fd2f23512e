package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultTokenFileName is the default file name for storing the API token value.
const DefaultTokenFileName = "api-token"

// GetTokenFilePath returns the default path for the API token file.
// Location: $XDG_DATA_HOME/proxmoxd/api-token (or ~/.local/share/proxmoxd/api-token)
func GetTokenFilePath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "proxmoxd", DefaultTokenFileName)
}

// LoadTokenFromPath loads the API token value from a specific file path.
// Returns empty string without error if the file doesn't exist.
func LoadTokenFromPath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ResolveTokenValue fills in the token value when a token name is configured
// without a value, checking sources in priority order:
// 1. The already-configured value (env, file, or context)
// 2. Local token file (~/.local/share/proxmoxd/api-token)
func ResolveTokenValue(cfg *Settings) {
	if cfg.TokenName == "" || cfg.TokenValue != "" {
		return
	}
	if value, err := LoadTokenFromPath(GetTokenFilePath()); err == nil && value != "" {
		cfg.TokenValue = value
		if cfg.Sources == nil {
			cfg.Sources = make(map[string]string)
		}
		cfg.Sources["tokenValue"] = SourceGlobal
	}
}
