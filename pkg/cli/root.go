// Package cli implements the proxmoxd command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// jsonOutput switches command output to JSON where supported.
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

// rootCmd represents the base command. Running proxmoxd with no subcommand
// starts the MCP server, which is how AI assistants launch it.
var rootCmd = &cobra.Command{
	Use:   "proxmoxd",
	Short: "proxmoxd is an MCP server for Proxmox VE",
	Long: `proxmoxd exposes a Proxmox VE cluster to AI assistants through the
Model Context Protocol (MCP). It speaks JSON-RPC 2.0 over stdio by default,
or over HTTP with SSE notifications when configured.

Configuration can be provided via flags, environment variables (PROXMOX_*),
or a configuration file. By default, proxmoxd looks for .proxmoxdrc.yaml in
the current directory and config.yaml under ~/.config/proxmoxd/.`,
	Example: `  # Connect with an API token and serve MCP over stdio
  proxmoxd --host 192.168.1.10 --user root@pam --token-name mcp --token-value <uuid>

  # Password auth against a self-signed cluster
  proxmoxd -H pve.lan -u root@pam -P secret -k

  # HTTP transport with lazy tool loading
  proxmoxd --transport http --http-port 8811 --lazy`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, &serveFlagVals)
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	registerServeFlags(rootCmd, &serveFlagVals)
}
