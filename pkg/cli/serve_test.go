package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getproxmoxd/proxmoxd/pkg/cliconfig"
	"github.com/spf13/cobra"
)

func newServeTestCmd(t *testing.T, args ...string) (*cobra.Command, *serveFlags) {
	t.Helper()
	// Keep the resolver away from any real user config.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	f := &serveFlags{}
	cmd := &cobra.Command{Use: "test"}
	registerServeFlags(cmd, f)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd, f
}

func TestResolveSettings_FromFlags(t *testing.T) {
	cmd, f := newServeTestCmd(t,
		"--host", "10.0.0.5",
		"--user", "root@pam",
		"--password", "secret",
		"--lazy",
		"--task-timeout", "120",
	)

	cfg, err := resolveSettings(cmd, f)
	if err != nil {
		t.Fatalf("resolveSettings failed: %v", err)
	}

	if cfg.Host != "10.0.0.5" {
		t.Errorf("host = %q", cfg.Host)
	}
	if cfg.User != "root@pam" {
		t.Errorf("user = %q", cfg.User)
	}
	if !cfg.Lazy {
		t.Error("expected lazy mode")
	}
	if cfg.TaskTimeout != 120 {
		t.Errorf("taskTimeout = %d", cfg.TaskTimeout)
	}
	if cfg.Port != cliconfig.DefaultPort {
		t.Errorf("port = %d, want default %d", cfg.Port, cliconfig.DefaultPort)
	}
	if cfg.Sources["host"] != cliconfig.SourceFlag {
		t.Errorf("host source = %q", cfg.Sources["host"])
	}
}

func TestResolveSettings_FlagsOverrideEnv(t *testing.T) {
	t.Setenv(cliconfig.EnvHost, "env-host")
	t.Setenv(cliconfig.EnvUser, "env@pam")
	t.Setenv(cliconfig.EnvPassword, "env-secret")

	cmd, f := newServeTestCmd(t, "--host", "flag-host")

	cfg, err := resolveSettings(cmd, f)
	if err != nil {
		t.Fatalf("resolveSettings failed: %v", err)
	}

	if cfg.Host != "flag-host" {
		t.Errorf("host = %q, want flag value", cfg.Host)
	}
	if cfg.User != "env@pam" {
		t.Errorf("user = %q, want env value", cfg.User)
	}
}

func TestResolveSettings_MissingCredentials(t *testing.T) {
	cmd, f := newServeTestCmd(t, "--host", "10.0.0.5", "--user", "root@pam")

	_, err := resolveSettings(cmd, f)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "either password or API token") {
		t.Errorf("error = %v", err)
	}
}

func TestResolveSettings_ContextFillsGaps(t *testing.T) {
	cmd, f := newServeTestCmd(t, "--password", "secret")

	err := cliconfig.SaveContextConfig(&cliconfig.ContextConfig{
		Version:        cliconfig.ContextConfigVersion,
		CurrentContext: "homelab",
		Contexts: map[string]*cliconfig.Context{
			"homelab": {Host: "ctx-host", User: "ctx@pam"},
		},
	})
	if err != nil {
		t.Fatalf("save context: %v", err)
	}

	cfg, rerr := resolveSettings(cmd, f)
	if rerr != nil {
		t.Fatalf("resolveSettings failed: %v", rerr)
	}

	if cfg.Host != "ctx-host" {
		t.Errorf("host = %q, want context value", cfg.Host)
	}
	if cfg.User != "ctx@pam" {
		t.Errorf("user = %q, want context value", cfg.User)
	}
}

func TestResolveSettings_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "host: file-host\nuser: file@pam\ntokenName: mcp\ntokenValue: abc\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd, f := newServeTestCmd(t, "--config", path)

	cfg, err := resolveSettings(cmd, f)
	if err != nil {
		t.Fatalf("resolveSettings failed: %v", err)
	}

	if cfg.Host != "file-host" {
		t.Errorf("host = %q", cfg.Host)
	}
	if !cfg.HasToken() {
		t.Error("expected token auth from file")
	}
}

func TestBuildLogger_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "proxmoxd.log")

	cfg := cliconfig.NewDefault()
	cfg.LogFile = path
	cfg.LogLevel = "debug"

	log, closeLog, err := buildLogger(cfg)
	if err != nil {
		t.Fatalf("buildLogger failed: %v", err)
	}
	log.Info("hello")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file content = %q", data)
	}
}
