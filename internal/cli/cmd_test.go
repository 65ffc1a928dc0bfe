package cli

import (
	"bytes"
	"context"
	"math/rand/v2"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
	"github.com/alexanderramin/jt/internal/repository"
	"github.com/alexanderramin/jt/internal/service"
	"github.com/alexanderramin/jt/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// wednesday falls in the week starting Monday 2026-10-12.
var wednesday = time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)

const randomConfig = `
api_endpoint = "https://jira.example.com"
worker = "JIRAUSER1"
daily_target_time_spent_minutes = 480
default_time_spent_minutes = 240

[[static_tasks]]
key = "M-1"
description = "Meetings"
`

const interactiveConfig = `
api_endpoint = "https://jira.example.com"
worker = "JIRAUSER1"
reviewer = "JIRAUSER2"
`

// scriptedPrompter answers prompts from fixed scripts, in order.
type scriptedPrompter struct {
	picks    []int
	minutes  []int
	confirms []bool
	inputs   []string

	titles []string
}

func (s *scriptedPrompter) ChooseTask(_ context.Context, _ time.Time, candidates []domain.Task, _, _ time.Duration) (domain.Task, error) {
	i := 0
	if len(s.picks) > 0 {
		i, s.picks = s.picks[0], s.picks[1:]
	}
	return candidates[i], nil
}

func (s *scriptedPrompter) ChooseDuration(context.Context, time.Time, domain.Task, time.Duration) (time.Duration, error) {
	m := 60
	if len(s.minutes) > 0 {
		m, s.minutes = s.minutes[0], s.minutes[1:]
	}
	return time.Duration(m) * time.Minute, nil
}

func (s *scriptedPrompter) Confirm(_ context.Context, title string) (bool, error) {
	s.titles = append(s.titles, title)
	ok := true
	if len(s.confirms) > 0 {
		ok, s.confirms = s.confirms[0], s.confirms[1:]
	}
	return ok, nil
}

func (s *scriptedPrompter) Input(_ context.Context, title, value string, validate func(string) error) (string, error) {
	s.titles = append(s.titles, title)
	if len(s.inputs) > 0 {
		value, s.inputs = s.inputs[0], s.inputs[1:]
	}
	if validate != nil {
		if err := validate(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

type testEnv struct {
	app        *App
	tracker    *testutil.FakeTracker
	journal    *repository.SQLiteJournalRepo
	prompter   *scriptedPrompter
	configPath string
}

func newTestEnv(t *testing.T, configBody string, interactive bool) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jt.toml")
	if configBody != "" {
		require.NoError(t, os.WriteFile(path, []byte(configBody), 0o600))
	}

	tracker := testutil.NewFakeTracker(
		testutil.NewTestIssue("ABC-1", testutil.WithSummary("Fix login")),
		testutil.NewTestIssue("ABC-2", testutil.WithSummary("Write docs")),
	)
	journal := repository.NewSQLiteJournalRepo(testutil.NewTestDB(t))
	prompter := &scriptedPrompter{}

	app := &App{
		NewTracker:    func(*url.URL) (service.Tracker, error) { return tracker, nil },
		Journal:       journal,
		Prompter:      prompter,
		Logger:        zerolog.Nop(),
		IsInteractive: func() bool { return interactive },
		Now:           func() time.Time { return wednesday },
		Rand:          rand.New(rand.NewPCG(1, 2)),
	}
	return &testEnv{app: app, tracker: tracker, journal: journal, prompter: prompter, configPath: path}
}

func executeCmd(t *testing.T, env *testEnv, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(env.app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := root.Execute()
	return buf.String(), err
}
