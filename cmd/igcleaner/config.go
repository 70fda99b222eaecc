package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"igcleaner/pkg/config"
	"igcleaner/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage igcleaner configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (IGCLEANER_*, also read from .env)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with the default values",
	Long: `Create a configuration file holding every option at its default value,
including the Instagram selectors, so they can be adjusted when the markup changes.

The file will be created in the current directory as '.igcleaner.yaml'
unless a different path is specified with the --config flag.`,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration after merging all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values`,
	RunE: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the configuration for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Required selectors and URLs
  - Timeout and limit ranges
  - Path accessibility`,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = ".igcleaner.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Fprintln(ui.Output, "\nTo overwrite, first remove the existing file:")
		fmt.Fprintf(ui.Output, "  rm %s\n", configPath)
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Fprintln(ui.Output, "\nNext steps:")
	fmt.Fprintln(ui.Output, "1. Adjust the profile directory and limits if needed")
	fmt.Fprintln(ui.Output, "2. Run 'igcleaner config validate' to check the configuration")
	fmt.Fprintln(ui.Output, "3. Start with 'igcleaner clean --dry-run'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Fprintln(ui.Output)
	fmt.Fprint(ui.Output, string(data))

	fmt.Fprintln(ui.Output, "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(ui.Output, "1. Command line flags")
	fmt.Fprintln(ui.Output, "2. Environment variables (IGCLEANER_*)")
	if configFile != "" {
		fmt.Fprintf(ui.Output, "3. Configuration file: %s\n", configFile)
	} else {
		fmt.Fprintln(ui.Output, "3. Configuration file: (searched in default locations)")
	}
	fmt.Fprintln(ui.Output, "4. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		ui.PrintInfo("Validating configuration", configFile)
	}

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		return err
	}

	var warnings []string
	if cfg.Cleaner.DryRun {
		warnings = append(warnings, "dry_run is enabled, nothing will be unsent")
	}
	if len(cfg.Cleaner.Include) > 0 && len(cfg.Cleaner.Exclude) > 0 {
		warnings = append(warnings, "both include and exclude are set, exclude wins on overlap")
	}
	if _, err := os.Stat(cfg.Browser.UserDataDir); os.IsNotExist(err) {
		warnings = append(warnings, "profile directory does not exist yet, a fresh login will be needed")
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, warn := range warnings {
			fmt.Fprintf(ui.Output, "  - %s\n", warn)
		}
		fmt.Fprintln(ui.Output)
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Fprintln(ui.Output, "\nConfiguration summary:")
	fmt.Fprintf(ui.Output, "  Profile directory: %s\n", cfg.Browser.UserDataDir)
	fmt.Fprintf(ui.Output, "  Inbox URL: %s\n", cfg.Instagram.InboxURL)
	fmt.Fprintf(ui.Output, "  Max scroll passes: %d\n", cfg.Cleaner.MaxScrollPasses)
	fmt.Fprintf(ui.Output, "  Max conversation time: %s\n", cfg.Cleaner.MaxConversationDuration)
	if len(cfg.Cleaner.Include) > 0 {
		fmt.Fprintf(ui.Output, "  Include: %s\n", strings.Join(cfg.Cleaner.Include, ", "))
	}
	if len(cfg.Cleaner.Exclude) > 0 {
		fmt.Fprintf(ui.Output, "  Exclude: %s\n", strings.Join(cfg.Cleaner.Exclude, ", "))
	}
	fmt.Fprintf(ui.Output, "  Log level: %s\n", cfg.Logging.Level)
	return nil
}
