package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/jt/internal/cli/formatter"
	"github.com/alexanderramin/jt/internal/domain"
	"github.com/alexanderramin/jt/internal/scheduler"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

var (
	// ErrNotInteractive indicates a prompt was needed without a terminal.
	ErrNotInteractive = errors.New("no interactive terminal")

	// ErrAborted indicates the user cancelled a prompt.
	ErrAborted = errors.New("aborted")
)

// Prompter asks the user for choices. It doubles as the interactive task
// chooser and duration source for the allocator.
type Prompter interface {
	scheduler.TaskChooser
	scheduler.DurationSource
	Confirm(ctx context.Context, title string) (bool, error)
	Input(ctx context.Context, title, value string, validate func(string) error) (string, error)
}

// jtHuhTheme returns a custom huh theme using the Gruvbox palette.
func jtHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// HuhPrompter prompts on the terminal with huh forms.
type HuhPrompter struct{}

func runForm(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithTheme(jtHuhTheme()).WithShowHelp(false)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return errors.Wrap(err, "running prompt")
	}
	return nil
}

func (HuhPrompter) ChooseTask(ctx context.Context, day time.Time, candidates []domain.Task, spent, target time.Duration) (domain.Task, error) {
	options := make([]huh.Option[int], 0, len(candidates))
	for i, task := range candidates {
		options = append(options, huh.NewOption(task.String(), i))
	}

	var picked int
	title := fmt.Sprintf("%s: select task (%s of %s)", formatter.DayLabel(day),
		formatter.FormatDuration(spent), formatter.FormatDuration(target))
	field := huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Value(&picked)
	if err := runForm(ctx, field); err != nil {
		return nil, err
	}
	return candidates[picked], nil
}

func (HuhPrompter) ChooseDuration(ctx context.Context, _ time.Time, task domain.Task, remaining time.Duration) (time.Duration, error) {
	value := strconv.Itoa(int(remaining / time.Minute))
	field := huh.NewInput().
		Title(fmt.Sprintf("Minutes on %s", task.Key())).
		Description(fmt.Sprintf("%s left today", formatter.FormatDuration(remaining))).
		Value(&value).
		Validate(validatePositiveMinutes)
	if err := runForm(ctx, field); err != nil {
		return 0, err
	}
	minutes, err := parseMinutes(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

func (HuhPrompter) Confirm(ctx context.Context, title string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := runForm(ctx, field); err != nil {
		return false, err
	}
	return ok, nil
}

func (HuhPrompter) Input(ctx context.Context, title, value string, validate func(string) error) (string, error) {
	field := huh.NewInput().
		Title(title).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	if err := runForm(ctx, field); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// parseMinutes parses a non-negative whole number of minutes. Blank is zero.
func parseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Newf("invalid minutes %q", s)
	}
	if n < 0 {
		return 0, errors.Newf("minutes must not be negative, got %d", n)
	}
	return n, nil
}

func validateMinutes(s string) error {
	_, err := parseMinutes(s)
	return err
}

func validatePositiveMinutes(s string) error {
	n, err := parseMinutes(s)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("enter at least one minute")
	}
	return nil
}

func requireInteractive(app *App, what string) error {
	if app.interactive() && app.Prompter != nil {
		return nil
	}
	return errors.WithHintf(errors.Wrap(ErrNotInteractive, what), "run %s from a terminal", what)
}
