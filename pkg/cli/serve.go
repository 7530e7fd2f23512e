package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/getproxmoxd/proxmoxd/pkg/cliconfig"
	"github.com/getproxmoxd/proxmoxd/pkg/logging"
	"github.com/getproxmoxd/proxmoxd/pkg/mcp"
	"github.com/getproxmoxd/proxmoxd/pkg/pve"
	"github.com/spf13/cobra"
)

// loginTimeout bounds the initial ticket login against the cluster.
const loginTimeout = 30 * time.Second

// serveFlags holds the flag values for the server entrypoint.
type serveFlags struct {
	configFile string

	host       string
	port       int
	user       string
	password   string
	tokenName  string
	tokenValue string
	insecure   bool

	logLevel  string
	logFormat string
	logFile   string

	transport     string
	httpHost      string
	httpPort      int
	httpAuthToken string

	lazy           bool
	taskTimeout    int
	sessionTimeout int
}

func registerServeFlags(cmd *cobra.Command, f *serveFlags) {
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to configuration file")

	cmd.Flags().StringVarP(&f.host, "host", "H", "", "Proxmox VE host (e.g., 192.168.1.10)")
	cmd.Flags().IntVarP(&f.port, "port", "p", cliconfig.DefaultPort, "Proxmox VE API port")
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "Proxmox VE user (e.g., root@pam)")
	cmd.Flags().StringVarP(&f.password, "password", "P", "", "Proxmox VE password")
	cmd.Flags().StringVarP(&f.tokenName, "token-name", "n", "", "API token name")
	cmd.Flags().StringVar(&f.tokenValue, "token-value", "", "API token value")
	cmd.Flags().BoolVarP(&f.insecure, "no-verify-ssl", "k", false, "Skip TLS certificate verification (self-signed certs)")

	cmd.Flags().StringVarP(&f.logLevel, "log-level", "L", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Also write logs to this file")

	cmd.Flags().StringVarP(&f.transport, "transport", "t", cliconfig.DefaultTransport, "MCP transport (stdio, http)")
	cmd.Flags().StringVar(&f.httpHost, "http-host", cliconfig.DefaultHTTPHost, "HTTP transport bind address")
	cmd.Flags().IntVarP(&f.httpPort, "http-port", "l", cliconfig.DefaultHTTPPort, "HTTP transport port")
	cmd.Flags().StringVar(&f.httpAuthToken, "http-auth-token", "", "Bearer token required on HTTP requests")

	cmd.Flags().BoolVar(&f.lazy, "lazy", false, "Start with a minimal tool catalog; load the rest on demand")
	cmd.Flags().IntVar(&f.taskTimeout, "task-timeout", cliconfig.DefaultTaskTimeout, "wait_for_task timeout in seconds")
	cmd.Flags().IntVar(&f.sessionTimeout, "session-timeout", cliconfig.DefaultSessionTimeout, "HTTP session idle timeout in seconds")
}

// resolveSettings merges config files, environment, saved context, and flags.
// Flags win over everything; the saved context only fills gaps.
func resolveSettings(cmd *cobra.Command, f *serveFlags) (*cliconfig.Settings, error) {
	configPath := f.configFile
	if configPath == "" {
		configPath = cliconfig.GetConfigPathFromEnv()
	}

	cfg, err := cliconfig.LoadAll(configPath)
	if err != nil {
		return nil, err
	}
	cliconfig.ApplyContext(cfg)

	flags := cmd.Flags()
	overlayStr := func(name, key string, val string, dst *string) {
		if flags.Changed(name) {
			*dst = val
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}
	overlayInt := func(name, key string, val int, dst *int) {
		if flags.Changed(name) {
			*dst = val
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}
	overlayBool := func(name, key string, val bool, dst *bool) {
		if flags.Changed(name) {
			*dst = val
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}

	overlayStr("host", "host", f.host, &cfg.Host)
	overlayInt("port", "port", f.port, &cfg.Port)
	overlayStr("user", "user", f.user, &cfg.User)
	overlayStr("password", "password", f.password, &cfg.Password)
	overlayStr("token-name", "tokenName", f.tokenName, &cfg.TokenName)
	overlayStr("token-value", "tokenValue", f.tokenValue, &cfg.TokenValue)
	overlayBool("no-verify-ssl", "insecure", f.insecure, &cfg.Insecure)
	overlayStr("log-level", "logLevel", f.logLevel, &cfg.LogLevel)
	overlayStr("log-format", "logFormat", f.logFormat, &cfg.LogFormat)
	overlayStr("log-file", "logFile", f.logFile, &cfg.LogFile)
	overlayStr("transport", "transport", f.transport, &cfg.Transport)
	overlayStr("http-host", "httpHost", f.httpHost, &cfg.HTTPHost)
	overlayInt("http-port", "httpPort", f.httpPort, &cfg.HTTPPort)
	overlayStr("http-auth-token", "httpAuthToken", f.httpAuthToken, &cfg.HTTPAuthToken)
	overlayBool("lazy", "lazy", f.lazy, &cfg.Lazy)
	overlayInt("task-timeout", "taskTimeout", f.taskTimeout, &cfg.TaskTimeout)
	overlayInt("session-timeout", "sessionTimeout", f.sessionTimeout, &cfg.SessionTimeout)

	cliconfig.ResolveTokenValue(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLogger builds the operational logger. Logs always go to stderr;
// stdout is reserved for the MCP protocol.
func buildLogger(cfg *cliconfig.Settings) (*slog.Logger, func(), error) {
	logCfg := logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
	}

	if cfg.LogFile != "" {
		log, closer, err := logging.NewWithFile(logCfg, cfg.LogFile)
		if err != nil {
			return nil, nil, err
		}
		return log, func() { _ = closer.Close() }, nil
	}
	return logging.New(logCfg), func() {}, nil
}

// buildClient constructs and authenticates the Proxmox API client.
func buildClient(ctx context.Context, cfg *cliconfig.Settings, log *slog.Logger) (*pve.Client, error) {
	opts := []pve.Option{pve.WithLogger(log)}
	if cfg.Insecure {
		opts = append(opts, pve.WithInsecureTLS())
	}
	if cfg.HasToken() {
		opts = append(opts, pve.WithAPIToken(cfg.User, cfg.TokenName, cfg.TokenValue))
	}

	client, err := pve.NewClient(cfg.Host, cfg.Port, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Proxmox client: %w", err)
	}

	if cfg.HasPassword() {
		loginCtx, cancel := context.WithTimeout(ctx, loginTimeout)
		defer cancel()
		if err := client.Login(loginCtx, cfg.User, cfg.Password); err != nil {
			return nil, fmt.Errorf("login failed: %w", err)
		}
		log.Info("authenticated with ticket", "user", cfg.User)
	} else {
		log.Info("using API token", "user", cfg.User, "token", cfg.TokenName)
	}

	return client, nil
}

func runServe(cmd *cobra.Command, f *serveFlags) error {
	cfg, err := resolveSettings(cmd, f)
	if err != nil {
		return err
	}

	log, closeLog, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := buildClient(ctx, cfg, log)
	if err != nil {
		return err
	}

	mcpCfg := &mcp.Config{
		Transport:      cfg.Transport,
		Lazy:           cfg.Lazy,
		TaskTimeout:    time.Duration(cfg.TaskTimeout) * time.Second,
		HTTPHost:       cfg.HTTPHost,
		HTTPPort:       cfg.HTTPPort,
		HTTPAuthToken:  cfg.HTTPAuthToken,
		SessionTimeout: time.Duration(cfg.SessionTimeout) * time.Second,
	}
	if err := mcpCfg.Validate(); err != nil {
		return err
	}

	server := mcp.NewServer(client, mcpCfg)
	server.SetLogger(log)

	log.Info("starting proxmoxd",
		"version", Version,
		"transport", cfg.Transport,
		"host", cfg.Host,
		"lazy", cfg.Lazy,
	)

	switch cfg.Transport {
	case cliconfig.TransportHTTP:
		httpServer := mcp.NewHTTPServer(server, mcpCfg)
		httpServer.SetLogger(log)
		return httpServer.Run(ctx)
	default:
		stdioServer := mcp.NewStdioServer(server)
		stdioServer.SetLogger(log)
		return stdioServer.Run(ctx)
	}
}
