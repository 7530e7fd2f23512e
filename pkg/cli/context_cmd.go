package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getproxmoxd/proxmoxd/pkg/cliconfig"
	"github.com/spf13/cobra"
)

// contextForJSON is a sanitized version of Context for JSON output.
// It masks the token value to prevent accidental exposure.
type contextForJSON struct {
	Host        string `json:"host"`
	Port        int    `json:"port,omitempty"`
	User        string `json:"user,omitempty"`
	TokenName   string `json:"tokenName,omitempty"`
	HasToken    bool   `json:"hasToken,omitempty"`
	Insecure    bool   `json:"insecure,omitempty"`
	Description string `json:"description,omitempty"`
}

func sanitizeContextForJSON(ctx *cliconfig.Context) *contextForJSON {
	return &contextForJSON{
		Host:        ctx.Host,
		Port:        ctx.Port,
		User:        ctx.User,
		TokenName:   ctx.TokenName,
		HasToken:    ctx.TokenValue != "",
		Insecure:    ctx.Insecure,
		Description: ctx.Description,
	}
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage saved cluster connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContextShow()
	},
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current cluster connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContextShow()
	},
}

func runContextShow() error {
	cfg, err := cliconfig.LoadContextConfig()
	if err != nil {
		return fmt.Errorf("failed to load context config: %w", err)
	}

	ctx := cfg.GetCurrentContext()
	if ctx == nil {
		fmt.Println("No current context set")
		fmt.Println("\nRun 'proxmoxd context add <name>' to save a cluster connection")
		return nil
	}

	fmt.Printf("Current context: %s\n", cfg.CurrentContext)
	fmt.Printf("  Host:  %s\n", ctx.Host)
	if ctx.Port != 0 {
		fmt.Printf("  Port:  %d\n", ctx.Port)
	}
	if ctx.User != "" {
		fmt.Printf("  User:  %s\n", ctx.User)
	}
	if ctx.TokenName != "" {
		fmt.Printf("  Token: %s\n", ctx.TokenName)
	}
	if ctx.Description != "" {
		fmt.Printf("  Description: %s\n", ctx.Description)
	}

	fmt.Println("\nRun 'proxmoxd context list' to see all contexts")
	return nil
}

var contextListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved cluster connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.LoadContextConfig()
		if err != nil {
			return fmt.Errorf("failed to load context config: %w", err)
		}

		if jsonOutput {
			out := make(map[string]*contextForJSON, len(cfg.Contexts))
			for name, ctx := range cfg.Contexts {
				out[name] = sanitizeContextForJSON(ctx)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		if len(cfg.Contexts) == 0 {
			fmt.Println("No contexts saved")
			return nil
		}

		names := make([]string, 0, len(cfg.Contexts))
		for name := range cfg.Contexts {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ctx := cfg.Contexts[name]
			marker := " "
			if name == cfg.CurrentContext {
				marker = "*"
			}
			fmt.Printf("%s %-20s %s", marker, name, ctx.Host)
			if ctx.User != "" {
				fmt.Printf("  (%s)", ctx.User)
			}
			fmt.Println()
		}
		return nil
	},
}

var contextUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch to a different cluster connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.LoadContextConfig()
		if err != nil {
			return fmt.Errorf("failed to load context config: %w", err)
		}

		if err := cfg.SetCurrentContext(args[0]); err != nil {
			var available []string
			for n := range cfg.Contexts {
				available = append(available, n)
			}
			sort.Strings(available)
			return fmt.Errorf("%w\n\nAvailable contexts: %s", err, strings.Join(available, ", "))
		}

		if err := cliconfig.SaveContextConfig(cfg); err != nil {
			return err
		}
		fmt.Printf("Switched to context %q\n", args[0])
		return nil
	},
}

var contextAddFlags struct {
	host        string
	port        int
	user        string
	tokenName   string
	tokenValue  string
	insecure    bool
	description string
	use         bool
}

var contextAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a cluster connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &contextAddFlags
		if f.host == "" {
			return fmt.Errorf("--host is required")
		}

		cfg, err := cliconfig.LoadContextConfig()
		if err != nil {
			return fmt.Errorf("failed to load context config: %w", err)
		}

		err = cfg.AddContext(args[0], &cliconfig.Context{
			Host:        f.host,
			Port:        f.port,
			User:        f.user,
			TokenName:   f.tokenName,
			TokenValue:  f.tokenValue,
			Insecure:    f.insecure,
			Description: f.description,
		})
		if err != nil {
			return err
		}
		if f.use || cfg.CurrentContext == "" {
			cfg.CurrentContext = args[0]
		}

		if err := cliconfig.SaveContextConfig(cfg); err != nil {
			return err
		}
		fmt.Printf("Added context %q\n", args[0])
		return nil
	},
}

var contextRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a saved cluster connection",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.LoadContextConfig()
		if err != nil {
			return fmt.Errorf("failed to load context config: %w", err)
		}

		if err := cfg.RemoveContext(args[0]); err != nil {
			return err
		}
		if err := cliconfig.SaveContextConfig(cfg); err != nil {
			return err
		}
		fmt.Printf("Removed context %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextListCmd)
	contextCmd.AddCommand(contextUseCmd)
	contextCmd.AddCommand(contextAddCmd)
	contextCmd.AddCommand(contextRemoveCmd)

	contextListCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	f := &contextAddFlags
	contextAddCmd.Flags().StringVar(&f.host, "host", "", "Proxmox VE host")
	contextAddCmd.Flags().IntVar(&f.port, "port", 0, "Proxmox VE API port (0 = default)")
	contextAddCmd.Flags().StringVar(&f.user, "user", "", "Proxmox VE user")
	contextAddCmd.Flags().StringVar(&f.tokenName, "token-name", "", "API token name")
	contextAddCmd.Flags().StringVar(&f.tokenValue, "token-value", "", "API token value")
	contextAddCmd.Flags().BoolVar(&f.insecure, "insecure", false, "Skip TLS certificate verification")
	contextAddCmd.Flags().StringVar(&f.description, "description", "", "Human-readable description")
	contextAddCmd.Flags().BoolVar(&f.use, "use", false, "Switch to the new context immediately")
}
