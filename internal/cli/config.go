package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate, validate or show the configuration",
		Long: `Manage the tradejournal configuration file.

Subcommands:
  init     - Write a default configuration file
  validate - Check that a configuration file loads
  show     - Print the effective configuration

Examples:
  tradejournal config init
  tradejournal config validate --file ~/.tradejournal/config.yaml`,
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigValidateCmd(),
		newConfigShowCmd(app),
	)
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = config.DefaultPath()
			}
			if _, err := os.Stat(output); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", output)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := config.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output config file path (default ~/.tradejournal/config.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Validate a configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(w, "  Account: %.2f %s\n", cfg.Account.StartBalance, cfg.Account.Currency)
			fmt.Fprintf(w, "  Risk: %.1f%% of %.2f\n", cfg.Risk.DefaultRiskPercent, cfg.Risk.AccountSize)
			fmt.Fprintf(w, "  Store: %s\n", cfg.Store.Type)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "Path to config file (default ~/.tradejournal/config.yaml)")
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.output(cmd)
			if out.IsJSON() {
				return out.JSON(app.Config)
			}
			data, err := yaml.Marshal(app.Config)
			if err != nil {
				return err
			}
			out.Printf("%s", data)
			return nil
		},
	}
}
