package formatter

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

// ProgressBar renders upload progress as a static bar, one line per update.
type ProgressBar struct {
	bar progress.Model
}

// NewProgressBar creates a bar of the given width. Width under 10 is raised to 10.
func NewProgressBar(width int) *ProgressBar {
	if width < 10 {
		width = 10
	}
	bar := progress.New(
		progress.WithSolidFill(string(ColorGreen)),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	bar.EmptyColor = string(ColorDim)
	return &ProgressBar{bar: bar}
}

// Render returns the bar for done of total followed by a counter,
// like "███░░░ 3/10". total <= 0 renders as complete.
func (p *ProgressBar) Render(done, total int) string {
	pct := 1.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	return fmt.Sprintf("%s %d/%d", p.bar.ViewAs(pct), done, total)
}
