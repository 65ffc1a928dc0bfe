package cli

import (
	"io"
	"math/rand/v2"
	"net/url"
	"os"
	"time"

	"github.com/alexanderramin/jt/internal/cli/formatter"
	"github.com/alexanderramin/jt/internal/config"
	"github.com/alexanderramin/jt/internal/repository"
	"github.com/alexanderramin/jt/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// TrackerFactory builds a tracker client for the configured endpoint.
type TrackerFactory func(base *url.URL) (service.Tracker, error)

// App holds the dependencies CLI commands run against.
type App struct {
	NewTracker TrackerFactory
	Journal    repository.JournalRepo
	Prompter   Prompter
	Logger     zerolog.Logger
	Observer   service.UseCaseObserver

	// IsInteractive reports whether a user sits at the terminal.
	IsInteractive func() bool

	// Now and Rand default to the wall clock and a time-seeded source.
	Now  func() time.Time
	Rand *rand.Rand

	configPath string
}

// NewRootCmd creates the top-level "jt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "jt",
		Short:         "Fill and submit your weekly Tempo timesheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "Path to jt.toml (default $JT_CONFIG or the user config dir)")

	root.AddCommand(
		newInitCmd(app),
		newFillCmd(app),
		newHistoryCmd(app),
	)

	return root
}

func (a *App) resolveConfigPath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.Path()
}

func (a *App) loadConfig() (*config.Config, error) {
	path, err := a.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) tracker(cfg *config.Config) (service.Tracker, error) {
	base, err := cfg.Endpoint()
	if err != nil {
		return nil, err
	}
	return a.NewTracker(base)
}

// directoryFactory adapts NewTracker for the bootstrap flow.
func (a *App) directoryFactory() service.DirectoryFactory {
	return func(base *url.URL) (service.Directory, error) {
		return a.NewTracker(base)
	}
}

// spin starts a spinner on out. It animates only in an interactive session
// writing to a terminal.
func (a *App) spin(out io.Writer, message string) func(final string) {
	return formatter.StartSpinner(out, message, a.interactive() && isTerminal(out))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
