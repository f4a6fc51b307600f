package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"briefly/cmd/briefly/cmd/shared"
	"briefly/internal/app"
	"briefly/internal/app/api/provider"
	appconfig "briefly/internal/config"
)

var (
	output string
	force  bool
)

func init() {
	initCmd.Flags().StringVarP(&output, "output", "o", appconfig.DefaultProvidersFile, "where to write the provider configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	Cmd.AddCommand(initCmd)
	Cmd.AddCommand(validateCmd)
}

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the provider configuration",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default providers.yaml",
	Long: `Write the default providers.yaml.

API keys are written as ${VAR} references and resolved from the environment
or .env when the file is loaded, so the file itself holds no secrets.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(output); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", output)
		}

		manager := provider.NewConfigManager(output, nil, nil)
		if err := manager.SaveConfig(appconfig.DefaultProviderConfiguration()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and list configured providers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig()
		if err != nil {
			return err
		}

		factory := app.NewProviderFactory()
		if err := cfg.Validate(factory.GetAvailableProviders()); err != nil {
			return err
		}

		registry, err := factory.BuildRegistry(&cfg.Providers)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "configuration ok (%s)\n", cfg.ProvidersPath)
		for _, kind := range []provider.OperationKind{provider.OperationTranscribe, provider.OperationSummarize} {
			chain := provider.ChainNames(registry, kind)
			if len(chain) == 0 {
				fmt.Fprintf(out, "  %-10s (none configured)\n", kind)
				continue
			}
			fmt.Fprintf(out, "  %-10s %s\n", kind, strings.Join(chain, " -> "))
		}
		fmt.Fprintf(out, "  status     %s\n", provider.CurrentStatus(registry))
		return nil
	},
}
