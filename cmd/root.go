package cmd

import (
	"fmt"
	"os"

	"github.com/kayz/promptkit/internal/config"
	"github.com/kayz/promptkit/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	logFile    *os.File

	// cfg is loaded once per invocation before any command runs.
	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "promptkit",
	Short: "Render structured prompts from declarative definitions",
	Long: `promptkit assembles prompts from typed components.

Commands:
  promptkit render <definition>    Render a definition with parameters
  promptkit params <definition>    List the parameters a definition uses
  promptkit inspect <definition>   Show components, orders and branches
  promptkit config init            Write a default config file`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		return setupLogging(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogFile()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: "+config.FileName+" next to the executable)")
}

func loadConfig() error {
	var (
		loaded *config.Config
		err    error
	)
	if configPath != "" {
		loaded, err = config.LoadFromPath(configPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded
	return nil
}

// setupLogging applies the log level, preferring the --log flag over the
// config file, and redirects output when a log file is configured.
func setupLogging(cmd *cobra.Command) error {
	levelName := cfg.Logging.Level
	if f := cmd.Flags().Lookup("log"); f != nil && f.Changed {
		levelName = logLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		logFile = f
	}
	return nil
}

// closeLogFile restores stderr logging and closes the configured log file.
func closeLogFile() error {
	if logFile == nil {
		return nil
	}
	logger.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func Execute() {
	err := rootCmd.Execute()
	if cerr := closeLogFile(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
