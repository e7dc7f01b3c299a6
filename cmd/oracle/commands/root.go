// Package commands implements the CLI commands for oracle.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/oracle/internal/app"
	"go.trai.ch/oracle/internal/build"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/engine/modelcache"
)

// CLI represents the command line interface for oracle.
type CLI struct {
	app     Application
	logs    LogSettings
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Model(ctx context.Context, path string) (*domain.DerivedModel, error)
	Watch(ctx context.Context, root string, opts app.WatchOptions) error
	Stats() modelcache.Stats
	Telemetry() domain.TelemetrySummary
}

// LogSettings is implemented by loggers whose output can be tuned from flags.
type LogSettings interface {
	SetJSON(enabled bool)
	SetLevel(level domain.LogLevel)
}

// New creates a new CLI instance with the given app. logs may be nil.
func New(a Application, logs LogSettings) *CLI {
	rootCmd := &cobra.Command{
		Use:           "oracle",
		Short:         "Derive and cache type models of Go projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.logs == nil {
			return
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if verbose {
			c.logs.SetLevel(domain.LogLevelDebug)
		}
		c.logs.SetJSON(jsonLogs)
	}

	rootCmd.AddCommand(c.newModelCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
