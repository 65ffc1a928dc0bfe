package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"

	"github.com/alexanderramin/jt/internal/cli"
	"github.com/alexanderramin/jt/internal/config"
	"github.com/alexanderramin/jt/internal/db"
	"github.com/alexanderramin/jt/internal/logger"
	"github.com/alexanderramin/jt/internal/repository"
	"github.com/alexanderramin/jt/internal/service"
	"github.com/alexanderramin/jt/internal/tracker"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func run() error {
	log := logger.New(os.Stderr, config.LogLevel())

	// Open the upload journal
	journalPath, err := config.JournalPath()
	if err != nil {
		return err
	}
	database, err := db.OpenDB(journalPath)
	if err != nil {
		return errors.Wrap(err, "opening upload journal")
	}
	defer database.Close()

	observer := tracker.NewLogObserver(log)

	app := &cli.App{
		NewTracker: func(base *url.URL) (service.Tracker, error) {
			token, err := config.TokenFromEnv()
			if err != nil {
				return nil, err
			}
			return tracker.NewClient(base, token,
				tracker.WithLogger(log),
				tracker.WithObserver(observer),
			), nil
		},
		Journal:  repository.NewSQLiteJournalRepo(database),
		Prompter: cli.HuhPrompter{},
		Logger:   log,
		Observer: service.NewLogUseCaseObserver(log.With().Str("component", "service").Logger()),
	}

	// Prompts need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
