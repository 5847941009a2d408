package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luminexlabs/lumenviz/pkg/config"
	"github.com/luminexlabs/lumenviz/pkg/errors"
)

// defaultConfigPath is where "config init" writes without an argument.
const defaultConfigPath = appName + ".toml"

// configCommand groups the configuration subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or print configuration files",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Long:  `Write the default configuration to path (default "lumenviz.toml"). The format follows the extension: .toml, .yaml or .yml.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := config.FormatFor(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().Save(path); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			printSuccess("Wrote default config")
			printFile(path)
			printNextStep("Render with it", fmt.Sprintf("%s render --config %s", appName, path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration a render would use: --config merged over the defaults, or the defaults alone.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			f := config.Format(format)
			if format == "" {
				f = config.FormatTOML
				if c.configPath != "" {
					f, _ = config.FormatFor(c.configPath)
				}
			}
			return cfg.Write(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output syntax: toml or yaml (default: the --config syntax, else toml)")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"toml", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}
