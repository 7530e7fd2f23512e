package cliconfig

import (
	"errors"
	"fmt"
)

// Validate checks that the merged settings describe a usable configuration.
func (s *Settings) Validate() error {
	if s.Host == "" {
		return errors.New("host is required")
	}
	if s.User == "" {
		return errors.New("user is required")
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port %d is out of range (1-65535)", s.Port)
	}

	hasPassword := s.HasPassword()
	hasToken := s.HasToken()
	if !hasPassword && !hasToken {
		if s.TokenName != "" || s.TokenValue != "" {
			return errors.New("API token requires both tokenName and tokenValue")
		}
		return errors.New("either password or API token (tokenName and tokenValue) is required")
	}
	if hasPassword && hasToken {
		return errors.New("provide either password or API token, not both")
	}

	switch s.Transport {
	case TransportStdio:
	case TransportHTTP:
		if s.HTTPPort < 1 || s.HTTPPort > 65535 {
			return fmt.Errorf("httpPort %d is out of range (1-65535)", s.HTTPPort)
		}
	default:
		return fmt.Errorf("unknown transport %q (expected stdio or http)", s.Transport)
	}

	if s.TaskTimeout < 0 {
		return fmt.Errorf("taskTimeout %d cannot be negative", s.TaskTimeout)
	}
	if s.SessionTimeout < 0 {
		return fmt.Errorf("sessionTimeout %d cannot be negative", s.SessionTimeout)
	}

	return nil
}
