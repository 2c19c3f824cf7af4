package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensebat/pkg/buildinfo"
	"github.com/matzehuels/licensebat/pkg/deps/collectors"
	"github.com/matzehuels/licensebat/pkg/integrations"
	"github.com/matzehuels/licensebat/pkg/observability"
	"github.com/matzehuels/licensebat/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "licensebat"

	// envPrefix prefixes environment overrides, e.g. LICENSEBAT_FORMAT.
	envPrefix = "LICENSEBAT"

	defaultLicrc = ".licrc"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// registries overrides registry base URLs; tests point them at fakes.
	registries collectors.Registries
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   appName,
		Short: "Licensebat checks the licenses of your dependencies",
		Long: `Licensebat reads a dependency lockfile, looks up the license of every
dependency in its registry and validates the result against your policy.`,
		Version:       buildinfo.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetHTTPHooks(&logHooks{logger: c.Logger})
			return initConfig(configFile)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./licensebat.yaml or ~/.config/licensebat/licensebat.yaml)")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.collectorsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Coordinator Factory
// =============================================================================

// newCoordinator builds the pipeline over every registered collector. All
// retrievers share one HTTP client.
func (c *CLI) newCoordinator(concurrency int) (*pipeline.Coordinator, error) {
	cs, err := collectors.New(integrations.NewClient(nil), c.registries)
	if err != nil {
		return nil, err
	}
	return pipeline.NewCoordinator(cs...).
		WithOptions(pipeline.Options{Concurrency: concurrency, Logger: c.Logger}), nil
}
