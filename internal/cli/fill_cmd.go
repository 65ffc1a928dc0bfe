package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/jt/internal/cli/formatter"
	"github.com/alexanderramin/jt/internal/config"
	"github.com/alexanderramin/jt/internal/domain"
	"github.com/alexanderramin/jt/internal/scheduler"
	"github.com/alexanderramin/jt/internal/service"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

type fillOptions struct {
	dryRun bool
	next   bool
	submit bool
	random bool
	yes    bool
}

func newFillCmd(app *App) *cobra.Command {
	var opts fillOptions

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Plan and upload worklogs for the week",
		Long: `Fetch your assigned issues, allocate time to them day by day from Monday
to Friday, and upload the resulting worklogs to Tempo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd.Context(), app, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Resolve everything but do not log work")
	addNextFlag(cmd.Flags(), &opts.next)
	cmd.Flags().BoolVar(&opts.submit, "submit", false, "Submit the week for approval after upload")
	cmd.Flags().BoolVar(&opts.random, "random", false, "Pick tasks at random using the default duration")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Upload without asking for confirmation")

	return cmd
}

func runFill(ctx context.Context, app *App, out io.Writer, opts fillOptions) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	if !opts.random && !(app.interactive() && app.Prompter != nil) {
		return errors.WithHint(errors.Wrap(ErrNotInteractive, "choosing tasks"),
			"pass --random (with default_time_spent_minutes configured) to fill without a terminal")
	}

	tracker, err := app.tracker(cfg)
	if err != nil {
		return err
	}

	first := scheduler.WeekStart(app.now(), opts.next)

	stop := app.spin(out, "Retrieving assigned tasks from JIRA")
	issues, err := tracker.SearchAssignedIssues(ctx, scheduler.DoneSince(first))
	if err != nil {
		stop("")
		return errors.Wrap(err, "retrieving assigned tasks")
	}
	stop(formatter.Success(fmt.Sprintf("Retrieved %d assigned tasks", len(issues))))

	candidates := make([]domain.Task, 0, len(issues)+len(cfg.StaticTasks))
	for _, issue := range issues {
		candidates = append(candidates, issue)
	}
	candidates = append(candidates, cfg.Tasks()...)

	plan, err := planWeek(ctx, app, out, cfg, first, candidates, opts.random)
	if err != nil {
		return err
	}

	target := cfg.DailyTarget()
	fmt.Fprintln(out)
	fmt.Fprint(out, formatter.FormatWeekPlan(plan, target))

	proceed, err := confirmUpload(ctx, app, out, cfg, plan, opts)
	if err != nil || !proceed {
		return err
	}

	if err := uploadWeek(ctx, app, out, cfg, tracker, plan, opts.dryRun); err != nil {
		return err
	}

	if opts.submit {
		sub := service.NewSubmitter(tracker, opts.dryRun, app.Observer)
		if err := sub.Submit(ctx, cfg.Reviewer, cfg.Worker, first); err != nil {
			return errors.Wrap(err, "worklogs were uploaded but the week was not submitted")
		}
		if opts.dryRun {
			fmt.Fprintln(out, formatter.Dim("Dry run: week not submitted"))
		} else {
			fmt.Fprintln(out, formatter.Success("Week submitted for approval"))
		}
	}
	return nil
}

func planWeek(ctx context.Context, app *App, out io.Writer, cfg *config.Config, first time.Time, candidates []domain.Task, random bool) (domain.WeekPlan, error) {
	target := cfg.DailyTarget()
	allocOpts := scheduler.AllocateOptions{
		Mode:            scheduler.ModeInteractive,
		DefaultDuration: cfg.DefaultDuration(),
		OnDay: func(day time.Time) {
			fmt.Fprintln(out, formatter.Bold(day.Format("Monday, 2 January")))
		},
		OnEntry: func(e domain.Entry, spent, target time.Duration) {
			fmt.Fprintf(out, "  Selected %s (%s)  %s\n", e.Task.Key(), formatter.FormatDuration(e.Duration),
				formatter.FormatDayProgress(e.Date, spent, target))
		},
	}
	if random {
		allocOpts.Mode = scheduler.ModeRandom
		allocOpts.Chooser = scheduler.NewRandomChooser(app.Rand)
	} else {
		allocOpts.Chooser = app.Prompter
		allocOpts.Durations = app.Prompter
	}

	plan, err := scheduler.PlanWeek(ctx, first, candidates, target, allocOpts)
	if err != nil {
		return domain.WeekPlan{}, err
	}
	return plan, nil
}

// confirmUpload warns about worklogs already journaled for the week and, in
// interactive runs without --yes, asks before anything is sent.
func confirmUpload(ctx context.Context, app *App, out io.Writer, cfg *config.Config, plan domain.WeekPlan, opts fillOptions) (bool, error) {
	if plan.Len() == 0 {
		fmt.Fprintln(out, formatter.Dim("Nothing to upload."))
		return false, nil
	}

	if app.Journal != nil {
		last := plan.Start.AddDate(0, 0, scheduler.WorkDays-1)
		existing, err := app.Journal.ListBetween(ctx, cfg.Worker, plan.Start, last)
		if err != nil {
			return false, errors.Wrap(err, "reading upload journal")
		}
		if len(existing) > 0 {
			fmt.Fprintln(out, formatter.Warning(fmt.Sprintf(
				"%d worklogs were already uploaded for this week; run `jt history` to review them", len(existing))))
		}
	}

	if opts.yes || !app.interactive() || app.Prompter == nil {
		return true, nil
	}
	verb := "Upload"
	if opts.dryRun {
		verb = "Dry-run upload of"
	}
	ok, err := app.Prompter.Confirm(ctx, fmt.Sprintf("%s %d worklogs (%s)?", verb, plan.Len(), formatter.FormatDuration(plan.Total())))
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(out, formatter.Dim("Aborted, nothing uploaded."))
	}
	return ok, nil
}

func uploadWeek(ctx context.Context, app *App, out io.Writer, cfg *config.Config, tracker service.Tracker, plan domain.WeekPlan, dryRun bool) error {
	bar := formatter.NewProgressBar(30)
	redraw := app.interactive() && isTerminal(out)
	uploader := service.NewUploader(tracker, app.Journal, service.UploadOptions{
		DryRun: dryRun,
		Logger: app.Logger,
		OnProgress: func(done, total int) {
			if redraw {
				fmt.Fprintf(out, "\r%s", bar.Render(done, total))
			}
		},
	}, app.Observer)

	fmt.Fprintln(out, formatter.Bold("Logging work on Tempo"))
	res, err := uploader.Upload(ctx, plan, cfg.Worker, cfg.DynamicAttributeTemplates(), cfg.StaticAttributeTemplates())
	if redraw {
		fmt.Fprintln(out)
	}
	if err != nil {
		var upErr *service.UploadError
		if errors.As(err, &upErr) {
			return errors.WithHintf(err, "%d of %d worklogs were uploaded before the failure; check `jt history` before re-running",
				upErr.Uploaded, plan.Len())
		}
		return err
	}

	if res.DryRun {
		fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Dry run: %d worklogs resolved (%s), nothing sent",
			len(res.Worklogs), formatter.FormatDuration(res.Total()))))
		return nil
	}
	fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Work logged: %d worklogs (%s)", res.Uploaded, formatter.FormatDuration(res.Total()))))
	return nil
}
