package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfigDir is the directory under the user config dir for global config.
const GlobalConfigDir = "proxmoxd"

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".proxmoxdrc.yaml", ".proxmoxdrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .proxmoxdrc.yaml or .proxmoxdrc.yml in the
// current directory. Returns empty string if not found.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // intentionally returning empty string when no config dir is available
		return "", nil
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// GetGlobalConfigSearchPaths returns the paths that will be searched for global config.
func GetGlobalConfigSearchPaths() []string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	paths := make([]string, len(GlobalConfigFileNames))
	for i, name := range GlobalConfigFileNames {
		paths[i] = filepath.Join(configDir, GlobalConfigDir, name)
	}
	return paths
}

// LoadSettingsFile loads Settings from a YAML file. SetFields records which
// keys were present so merging can honor explicit false values.
func LoadSettingsFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Settings
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{
			Path:    path,
			Message: err.Error(),
		}
	}

	var present map[string]interface{}
	if err := yaml.Unmarshal(data, &present); err == nil {
		cfg.SetFields = make(map[string]bool, len(present))
		for key := range present {
			cfg.SetFields[key] = true
		}
	}

	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: env > local config > global config > defaults. Flags are
// applied on top by the CLI after this returns.
//
// When explicitPath is non-empty only that file is consulted, and a missing
// or unreadable file is an error instead of being skipped.
func LoadAll(explicitPath string) (*Settings, error) {
	cfg := NewDefault()

	if explicitPath != "" {
		fileCfg, err := LoadSettingsFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		MergeSettings(cfg, fileCfg, SourceLocal)
	} else {
		if globalPath, err := FindGlobalConfig(); err == nil && globalPath != "" {
			if globalCfg, err := LoadSettingsFile(globalPath); err == nil {
				MergeSettings(cfg, globalCfg, SourceGlobal)
			}
		}
		if localPath, err := FindLocalConfig(); err == nil && localPath != "" {
			if localCfg, err := LoadSettingsFile(localPath); err == nil {
				MergeSettings(cfg, localCfg, SourceLocal)
			}
		}
	}

	LoadEnvSettings(cfg)

	return cfg, nil
}
