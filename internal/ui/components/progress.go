package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqdeck/internal/ui/theme"
)

// ProgressBar displays a horizontal completion bar for a catalog node.
// Nodes whose completion could not be read render as "No Data" instead
// of a misleading zero.
type ProgressBar struct {
	Label     string
	Completed int
	Total     int
	Percent   int
	HasData   bool
	Width     int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, completed, total, percent int, hasData bool, width int) ProgressBar {
	return ProgressBar{
		Label:     label,
		Completed: completed,
		Total:     total,
		Percent:   percent,
		HasData:   hasData,
		Width:     width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	if !p.HasData {
		return result + theme.Hint.Render("No Data")
	}

	labelWidth := lipgloss.Width(result)
	suffix := fmt.Sprintf("  %d/%d (%d%%)", p.Completed, p.Total, p.Percent)

	barWidth := p.Width - labelWidth - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * p.Percent / 100
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	filledStr := theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	emptyStr := theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)

	return result
}
