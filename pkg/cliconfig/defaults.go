package cliconfig

// DefaultPort is the Proxmox VE API port.
const DefaultPort = 8006

// DefaultTransport is the MCP transport used when none is configured.
const DefaultTransport = TransportStdio

// DefaultHTTPHost is the bind address for the HTTP transport.
const DefaultHTTPHost = "127.0.0.1"

// DefaultHTTPPort is the listen port for the HTTP transport.
const DefaultHTTPPort = 8811

// DefaultTaskTimeout is the wait_for_task timeout in seconds.
const DefaultTaskTimeout = 300

// DefaultSessionTimeout is the HTTP session idle timeout in seconds.
const DefaultSessionTimeout = 1800

// DefaultLogLevel is the log level used when none is configured.
const DefaultLogLevel = "info"

// DefaultLogFormat is the log output format (text or json).
const DefaultLogFormat = "text"

// NewDefault creates a new Settings with default values.
func NewDefault() *Settings {
	cfg := &Settings{
		Port:           DefaultPort,
		Transport:      DefaultTransport,
		HTTPHost:       DefaultHTTPHost,
		HTTPPort:       DefaultHTTPPort,
		TaskTimeout:    DefaultTaskTimeout,
		SessionTimeout: DefaultSessionTimeout,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		Sources:        make(map[string]string),
	}

	for _, key := range []string{
		"port", "transport", "httpHost", "httpPort",
		"taskTimeout", "sessionTimeout", "logLevel", "logFormat",
	} {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
