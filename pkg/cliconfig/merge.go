package cliconfig

// MergeSettings merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeSettings(target, source *Settings, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.Host != "" {
		target.Host = source.Host
		target.Sources["host"] = sourceType
	}
	if source.Port != 0 {
		target.Port = source.Port
		target.Sources["port"] = sourceType
	}
	if source.User != "" {
		target.User = source.User
		target.Sources["user"] = sourceType
	}
	if source.Password != "" {
		target.Password = source.Password
		target.Sources["password"] = sourceType
	}
	if source.TokenName != "" {
		target.TokenName = source.TokenName
		target.Sources["tokenName"] = sourceType
	}
	if source.TokenValue != "" {
		target.TokenValue = source.TokenValue
		target.Sources["tokenValue"] = sourceType
	}
	if source.Transport != "" {
		target.Transport = source.Transport
		target.Sources["transport"] = sourceType
	}
	if source.HTTPHost != "" {
		target.HTTPHost = source.HTTPHost
		target.Sources["httpHost"] = sourceType
	}
	if source.HTTPPort != 0 {
		target.HTTPPort = source.HTTPPort
		target.Sources["httpPort"] = sourceType
	}
	if source.HTTPAuthToken != "" {
		target.HTTPAuthToken = source.HTTPAuthToken
		target.Sources["httpAuthToken"] = sourceType
	}
	if source.TaskTimeout != 0 {
		target.TaskTimeout = source.TaskTimeout
		target.Sources["taskTimeout"] = sourceType
	}
	if source.SessionTimeout != 0 {
		target.SessionTimeout = source.SessionTimeout
		target.Sources["sessionTimeout"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.LogFile != "" {
		target.LogFile = source.LogFile
		target.Sources["logFile"] = sourceType
	}
	// For booleans, checking `if source.X` cannot detect an explicit false.
	// SetFields (populated during file loading) records whether a boolean was
	// explicitly present in the source. If SetFields is nil (e.g., config
	// built programmatically), fall back to only merging true values.
	if boolIsSet(source, "insecure") {
		target.Insecure = source.Insecure
		target.Sources["insecure"] = sourceType
	}
	if boolIsSet(source, "lazy") {
		target.Lazy = source.Lazy
		target.Sources["lazy"] = sourceType
	}
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config.
func boolIsSet(cfg *Settings, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "insecure":
		return cfg.Insecure
	case "lazy":
		return cfg.Lazy
	}
	return false
}
