// Package cliconfig provides configuration types and loading for the proxmoxd CLI.
package cliconfig

// Settings represents the complete configuration for the proxmoxd server.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.proxmoxdrc.yaml in current directory)
// 4. Global config file (~/.config/proxmoxd/config.yaml)
// 5. Default values (lowest priority)
type Settings struct {
	// Proxmox connection settings
	Host       string `yaml:"host,omitempty" json:"host,omitempty"`
	Port       int    `yaml:"port" json:"port"`
	User       string `yaml:"user,omitempty" json:"user,omitempty"`
	Password   string `yaml:"password,omitempty" json:"-"`
	TokenName  string `yaml:"tokenName,omitempty" json:"tokenName,omitempty"`
	TokenValue string `yaml:"tokenValue,omitempty" json:"-"`
	Insecure   bool   `yaml:"insecure" json:"insecure"`

	// Transport settings
	Transport     string `yaml:"transport" json:"transport"`
	HTTPHost      string `yaml:"httpHost" json:"httpHost"`
	HTTPPort      int    `yaml:"httpPort" json:"httpPort"`
	HTTPAuthToken string `yaml:"httpAuthToken,omitempty" json:"-"`

	// Server behavior
	Lazy           bool `yaml:"lazy" json:"lazy"`
	TaskTimeout    int  `yaml:"taskTimeout" json:"taskTimeout"`
	SessionTimeout int  `yaml:"sessionTimeout" json:"sessionTimeout"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were explicitly present in the source,
	// so an explicit false can be told apart from an absent boolean.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// Transport names accepted by the transport setting.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// HasPassword reports whether password authentication is configured.
func (s *Settings) HasPassword() bool {
	return s.Password != ""
}

// HasToken reports whether API token authentication is fully configured.
func (s *Settings) HasToken() bool {
	return s.TokenName != "" && s.TokenValue != ""
}
