package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvConfig         = "PROXMOX_CONFIG"
	EnvHost           = "PROXMOX_HOST"
	EnvPort           = "PROXMOX_PORT"
	EnvUser           = "PROXMOX_USER"
	EnvPassword       = "PROXMOX_PASSWORD"
	EnvTokenName      = "PROXMOX_TOKEN_NAME"
	EnvTokenValue     = "PROXMOX_TOKEN_VALUE"
	EnvInsecure       = "PROXMOX_NO_VERIFY_SSL"
	EnvLogLevel       = "PROXMOX_LOG_LEVEL"
	EnvLogFormat      = "PROXMOX_LOG_FORMAT"
	EnvLogFile        = "PROXMOX_LOG_FILE"
	EnvTransport      = "PROXMOX_SERVER_TYPE"
	EnvHTTPHost       = "PROXMOX_HTTP_HOST"
	EnvHTTPPort       = "PROXMOX_HTTP_PORT"
	EnvHTTPAuthToken  = "PROXMOX_HTTP_AUTH_TOKEN"
	EnvLazy           = "PROXMOX_LAZY_MODE"
	EnvTaskTimeout    = "PROXMOX_TASK_TIMEOUT"
	EnvSessionTimeout = "PROXMOX_SESSION_TIMEOUT"
)

// LoadEnvSettings loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvSettings(cfg *Settings) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	setStr := func(env, key string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
			cfg.Sources[key] = SourceEnv
		}
	}
	setInt := func(env, key string, dst *int) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
				cfg.Sources[key] = SourceEnv
			}
		}
	}
	setBool := func(env, key string, dst *bool) {
		if v := os.Getenv(env); v != "" {
			*dst = v == "true" || v == "1" || v == "yes"
			cfg.Sources[key] = SourceEnv
		}
	}

	setStr(EnvHost, "host", &cfg.Host)
	setInt(EnvPort, "port", &cfg.Port)
	setStr(EnvUser, "user", &cfg.User)
	setStr(EnvPassword, "password", &cfg.Password)
	setStr(EnvTokenName, "tokenName", &cfg.TokenName)
	setStr(EnvTokenValue, "tokenValue", &cfg.TokenValue)
	setBool(EnvInsecure, "insecure", &cfg.Insecure)
	setStr(EnvLogLevel, "logLevel", &cfg.LogLevel)
	setStr(EnvLogFormat, "logFormat", &cfg.LogFormat)
	setStr(EnvLogFile, "logFile", &cfg.LogFile)
	setStr(EnvTransport, "transport", &cfg.Transport)
	setStr(EnvHTTPHost, "httpHost", &cfg.HTTPHost)
	setInt(EnvHTTPPort, "httpPort", &cfg.HTTPPort)
	setStr(EnvHTTPAuthToken, "httpAuthToken", &cfg.HTTPAuthToken)
	setBool(EnvLazy, "lazy", &cfg.Lazy)
	setInt(EnvTaskTimeout, "taskTimeout", &cfg.TaskTimeout)
	setInt(EnvSessionTimeout, "sessionTimeout", &cfg.SessionTimeout)
}

// GetConfigPathFromEnv returns the config file path from the environment.
// Returns empty string if not set.
func GetConfigPathFromEnv() string {
	return os.Getenv(EnvConfig)
}
