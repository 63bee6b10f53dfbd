package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/gosh/internal/config"
	"github.com/Paintersrp/gosh/internal/shell"
)

// NewRootCmd builds the gosh command-line entrypoint. Running it starts the
// interactive read-eval loop on standard input.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		noPrompt   bool
		debugLog   string
	)

	root := &cobra.Command{
		Use:   "gosh",
		Short: "Interactive shell with POSIX job control",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if noPrompt {
				off := false
				cfg.ShowPrompt = &off
			}

			logger, closeLog, err := newLogger(debugLog)
			if err != nil {
				return err
			}
			defer closeLog()

			sh := shell.New(cfg, shell.WithLogger(logger))
			return sh.Run()
		},
	}

	root.Flags().StringVarP(&configPath, "config", "f", "", "Path to the shell configuration file")
	root.Flags().BoolVar(&noPrompt, "no-prompt", false, "Suppress the prompt even on a terminal")
	root.Flags().StringVar(&debugLog, "debug-log", "", "Append diagnostic logs to this file")

	root.SilenceUsage = true
	root.SilenceErrors = true
	return root
}

// Execute runs the CLI entrypoint. Fatal internal errors exit with status 1;
// the exit builtin and end of input exit with status 0.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration from the flag, the GOSH_CONFIG
// environment variable, or built-in defaults, in that order. An explicitly
// requested file that cannot be loaded is an error.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("GOSH_CONFIG")
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newLogger opens the diagnostic logger; logging is disabled unless a path
// is provided.
func newLogger(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}
