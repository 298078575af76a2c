// Package cli implements the vstyle command-line interface.
//
// The commands load a mark spec document, an optional theme and an optional
// JSON dataset, build the marks described by the document and print what
// the style engine resolves for them:
//
//   - resolve: print resolved attribute values per datum
//   - dump: print the state style tables of marks
//   - dot: write the referer relations of marks in GraphViz format
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "vstyle"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
			Prefix:          appName,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "vstyle resolves visual attributes of chart marks",
		Long:         `vstyle builds chart marks from a declarative mark spec and resolves their visual attributes for a dataset, showing the outcome of the style cascade, data-driven scales, gradients, borders and referers.`,
		SilenceUsage: true,
	}
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.dumpCommand())
	root.AddCommand(c.dotCommand())
	return root
}

// inputFlags are the flags shared by all commands.
type inputFlags struct {
	spec  string
	theme string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.spec, "spec", "s", "", "mark spec document (.yaml, .yml or .toml)")
	cmd.Flags().StringVarP(&f.theme, "theme", "t", "", "theme file (.yaml, .yml or .toml); default theme if empty")
	_ = cmd.MarkFlagRequired("spec")
}
