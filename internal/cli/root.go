package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/depot-labs/depot/internal/branding"
	"github.com/depot-labs/depot/internal/config"
	"github.com/depot-labs/depot/internal/registry"
	"github.com/depot-labs/depot/internal/ui"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

// ErrMissingArgument is returned when a command is invoked without a
// required positional argument.
var ErrMissingArgument = errors.New("missing argument")

// registryOptions are appended to the options every command builds its
// registry with.
var registryOptions []registry.Option

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs versioned packages from local or remote archives,
clones git repositories, and keeps a list of source repositories.

Archives are named <name>-<version>.mpkg.zip or <name>-<version>.art.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

// Execute runs the root command with build info injected via ldflags. A
// failure is printed as a single error line on stderr and returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	p := ui.New(w)
	if kind := registry.KindOf(err); kind != "" {
		p.Error("%s (%s)", err, kind)
		return
	}
	p.Error("%s", err)
}

// requireArgs accepts between len(names) and len(names)+optional
// positional arguments. Too few is reported as ErrMissingArgument naming
// the first absent one.
func requireArgs(optional int, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			return fmt.Errorf("%w: <%s>. Run '%s --help' for usage", ErrMissingArgument, names[len(args)], cmd.CommandPath())
		}
		return cobra.MaximumNArgs(len(names)+optional)(cmd, args)
	}
}

// newLogger builds the stderr logger from the configured level; --verbose
// forces debug.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// setup resolves configuration and returns it with a logger writing to the
// command's stderr.
func setup(cmd *cobra.Command) (config.Paths, *slog.Logger, error) {
	paths, err := config.Resolve()
	if err != nil {
		return config.Paths{}, nil, fmt.Errorf("resolving configuration: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), paths.LogLevel)
	logger.Debug("configuration resolved",
		"home", paths.Home, "install_dir", paths.InstallDir, "db_file", paths.DBFile)
	return paths, logger, nil
}

func newRegistry(cmd *cobra.Command) (*registry.Registry, error) {
	paths, logger, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	opts := append([]registry.Option{registry.WithLogger(logger)}, registryOptions...)
	return registry.New(paths, opts...), nil
}
