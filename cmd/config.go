package cmd

import (
	"fmt"
	"os"

	"github.com/kayz/promptkit/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newConfigCommand())
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the promptkit config file",
	}
	cmd.AddCommand(newConfigInitCommand(), newConfigShowCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.ConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Where to write the config (default: next to the executable)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(),
				"logging.level: %s\nlogging.file: %s\nrender.separator: %q\nrender.default_labels: %t\nrender.skip_empty: %t\ndefinitions.dir: %s\n",
				cfg.Logging.Level, cfg.Logging.File, cfg.Render.Separator,
				cfg.Render.DefaultLabels, cfg.Render.SkipEmpty, cfg.Definitions.Dir)
			return err
		},
	}
}
