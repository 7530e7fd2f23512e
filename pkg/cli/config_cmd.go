package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/getproxmoxd/proxmoxd/pkg/cliconfig"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration with source annotations",
	Example: `  proxmoxd config
  proxmoxd config --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconfig.LoadAll(cliconfig.GetConfigPathFromEnv())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cliconfig.ApplyContext(cfg)

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}

		fmt.Println("Effective Configuration:")
		fmt.Println()

		printConfigValue("host", cfg.Host, cfg.Sources["host"])
		printConfigValue("port", cfg.Port, cfg.Sources["port"])
		printConfigValue("user", cfg.User, cfg.Sources["user"])
		printConfigValue("password", mask(cfg.Password), cfg.Sources["password"])
		printConfigValue("tokenName", cfg.TokenName, cfg.Sources["tokenName"])
		printConfigValue("tokenValue", mask(cfg.TokenValue), cfg.Sources["tokenValue"])
		printConfigValue("insecure", cfg.Insecure, cfg.Sources["insecure"])
		printConfigValue("transport", cfg.Transport, cfg.Sources["transport"])
		if cfg.Transport == cliconfig.TransportHTTP {
			printConfigValue("httpHost", cfg.HTTPHost, cfg.Sources["httpHost"])
			printConfigValue("httpPort", cfg.HTTPPort, cfg.Sources["httpPort"])
			printConfigValue("httpAuthToken", mask(cfg.HTTPAuthToken), cfg.Sources["httpAuthToken"])
			printConfigValue("sessionTimeout", cfg.SessionTimeout, cfg.Sources["sessionTimeout"])
		}
		printConfigValue("lazy", cfg.Lazy, cfg.Sources["lazy"])
		printConfigValue("taskTimeout", cfg.TaskTimeout, cfg.Sources["taskTimeout"])
		printConfigValue("logLevel", cfg.LogLevel, cfg.Sources["logLevel"])
		printConfigValue("logFormat", cfg.LogFormat, cfg.Sources["logFormat"])
		if cfg.LogFile != "" {
			printConfigValue("logFile", cfg.LogFile, cfg.Sources["logFile"])
		}

		fmt.Println()
		fmt.Println("Config file search paths:")
		for _, name := range cliconfig.LocalConfigFileNames {
			fmt.Printf("  ./%s\n", name)
		}
		for _, path := range cliconfig.GetGlobalConfigSearchPaths() {
			fmt.Printf("  %s\n", path)
		}
		return nil
	},
}

func printConfigValue(name string, value interface{}, source string) {
	if source == "" {
		source = cliconfig.SourceDefault
	}
	fmt.Printf("  %-16s %-24v (%s)\n", name+":", value, source)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func init() {
	configCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.AddCommand(configCmd)
}
