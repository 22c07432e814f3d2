package cli

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fjglira/go-supportcode/internal/config"
	"github.com/fjglira/go-supportcode/pkg/domain"
	"github.com/fjglira/go-supportcode/pkg/supportcode"
)

// Loader registers a project's support code on the builder. It runs after
// the builder has been reset for the project.
type Loader func(b *supportcode.Builder) error

type app struct {
	cfgFile string
	envFile string
	verbose bool
	log     *logrus.Logger
	loaders []Loader

	// stderr is where the logger writes while no log file is open.
	stderr  io.Writer
	logFile *os.File
}

// NewRootCommand builds the supportcode command tree.
func NewRootCommand(loaders ...Loader) *cobra.Command {
	return newRootCommand(&app{
		log:     logrus.New(),
		loaders: loaders,
	})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "supportcode",
		Short: "Build and inspect test support code libraries",
		Long: `supportcode collects step definitions, hooks and world configuration
registered by a project's support code and reports the finalized library
that a test executor would receive.

Settings come from a YAML configuration file (supportcode.yaml) and may be
overridden through SUPPORTCODE_* environment variables or a .env file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.stderr = cmd.ErrOrStderr()
			a.log.SetOutput(a.stderr)
			if a.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "supportcode.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with SUPPORTCODE_* overrides")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newValidateCmd(a), newDescribeCmd(a))
	return rootCmd
}

// Execute runs the root command with the given support code loaders.
func Execute(loaders ...Loader) error {
	return NewRootCommand(loaders...).Execute()
}

// configure applies env overrides, validates cfg and points the logger at
// the configured level and file.
func (a *app) configure(cfg *config.Config) error {
	if err := config.ApplyEnv(cfg, a.envFile); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if !a.verbose && cfg.Logging.Level != "" {
		level, err := logrus.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return domain.NewError("config", a.cfgFile, 0, "invalid logging.level", err)
		}
		a.log.SetLevel(level)
	}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return domain.NewErrorWithSuggestion("config", cfg.Logging.File, 0,
				"failed to open log file",
				"check that the directory exists or unset logging.file in supportcode.yaml",
				err)
		}
		a.close()
		a.logFile = f
		a.log.SetOutput(f)
	}
	return nil
}

// close releases the log file opened by configure, if any, and sends
// logging back to stderr. Subcommands defer it so failed runs, which skip
// PersistentPostRun, do not leak the handle.
func (a *app) close() {
	if a.logFile == nil {
		return
	}
	if a.stderr != nil {
		a.log.SetOutput(a.stderr)
	} else {
		a.log.SetOutput(os.Stderr)
	}
	if err := a.logFile.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close log file")
	}
	a.logFile = nil
}
