package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/jt/internal/cli/formatter"
	"github.com/alexanderramin/jt/internal/config"
	"github.com/alexanderramin/jt/internal/service"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Connect to the tracker and write jt.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

func runInit(ctx context.Context, app *App, out io.Writer) error {
	if err := requireInteractive(app, "jt init"); err != nil {
		return err
	}
	path, err := app.resolveConfigPath()
	if err != nil {
		return err
	}

	existing, err := config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, config.ErrConfigNotFound):
		existing = nil
	default:
		app.Logger.Warn().Err(err).Str("path", path).Msg("ignoring unreadable config")
		fmt.Fprintln(out, formatter.Warning("Existing config could not be read and will be replaced"))
		existing = nil
	}
	var endpoint string
	if existing != nil {
		endpoint = existing.APIEndpoint
	}

	endpoint, err = app.Prompter.Input(ctx, "Tracker API endpoint", endpoint, func(s string) error {
		_, err := config.ParseEndpoint(s)
		return err
	})
	if err != nil {
		return err
	}

	boot := service.NewBootstrap(app.directoryFactory(), app.Observer)
	stop := app.spin(out, "Connecting to "+endpoint)
	base, dir, err := boot.Connect(ctx, endpoint)
	if err != nil {
		stop("")
		return err
	}
	stop(formatter.Success("Connected to " + base.String()))

	answers, err := askInitAnswers(ctx, app.Prompter, existing)
	if err != nil {
		return err
	}

	stop = app.spin(out, "Resolving account keys")
	cfg, err := boot.Configure(ctx, dir, base, answers)
	if err != nil {
		stop("")
		return err
	}
	stop(formatter.Success("Resolved worker " + cfg.Worker))

	if existing != nil {
		ok, err := app.Prompter.Confirm(ctx, fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, formatter.Dim("Aborted, config left unchanged."))
			return nil
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.Success("Wrote "+path))
	return nil
}

func askInitAnswers(ctx context.Context, p Prompter, existing *config.Config) (service.InitAnswers, error) {
	answers := service.InitAnswers{Existing: existing}

	var err error
	answers.WorkerUsername, err = p.Input(ctx, "Your tracker username", "", func(s string) error {
		if s == "" {
			return errors.New("username is required")
		}
		return nil
	})
	if err != nil {
		return answers, err
	}
	answers.ReviewerUsername, err = p.Input(ctx, "Reviewer username (blank to skip submission)", "", nil)
	if err != nil {
		return answers, err
	}

	target := strconv.Itoa(config.DefaultDailyTargetMinutes)
	def := ""
	if existing != nil {
		if existing.DailyTargetTimeSpentMinutes > 0 {
			target = strconv.Itoa(existing.DailyTargetTimeSpentMinutes)
		}
		if existing.DefaultTimeSpentMinutes > 0 {
			def = strconv.Itoa(existing.DefaultTimeSpentMinutes)
		}
	}

	raw, err := p.Input(ctx, "Daily target in minutes", target, validateMinutes)
	if err != nil {
		return answers, err
	}
	if answers.DailyTargetMinutes, err = parseMinutes(raw); err != nil {
		return answers, err
	}

	raw, err = p.Input(ctx, "Default minutes per entry (blank to ask each time)", def, validateMinutes)
	if err != nil {
		return answers, err
	}
	if answers.DefaultMinutes, err = parseMinutes(raw); err != nil {
		return answers, err
	}
	return answers, nil
}
