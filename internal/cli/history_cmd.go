package cli

import (
	"fmt"

	"github.com/alexanderramin/jt/internal/cli/formatter"
	"github.com/alexanderramin/jt/internal/scheduler"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var next bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List worklogs uploaded for the week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Journal == nil {
				return errors.New("upload journal is not available")
			}
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			first := scheduler.WeekStart(app.now(), next)
			last := first.AddDate(0, 0, scheduler.WorkDays-1)
			records, err := app.Journal.ListBetween(cmd.Context(), cfg.Worker, first, last)
			if err != nil {
				return errors.Wrap(err, "reading upload journal")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(formatter.WeekLabel(first)))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatJournal(records, app.now()))
			return nil
		},
	}

	addNextFlag(cmd.Flags(), &next)

	return cmd
}
