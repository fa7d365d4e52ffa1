package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/ui/theme"
)

// Tally is a horizontal bar showing done out of total, e.g. questions
// checked out of the test size.
type Tally struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewTally creates a tally bar. Done is clamped into [0, total].
func NewTally(label string, done, total, width int) Tally {
	total = max(total, 0)
	return Tally{
		Label: label,
		Done:  min(max(done, 0), total),
		Total: total,
		Width: width,
	}
}

// Fraction returns Done/Total, or 0 for an empty tally.
func (t Tally) Fraction() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Done) / float64(t.Total)
}

// View renders "label ████░░░░ done/total".
func (t Tally) View() string {
	var b strings.Builder
	if t.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(t.Label))
		b.WriteString("  ")
	}

	count := fmt.Sprintf("  %d/%d", t.Done, t.Total)
	barWidth := max(t.Width-lipgloss.Width(b.String())-len(count), 4)

	filled := int(float64(barWidth) * t.Fraction())
	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(count))
	return b.String()
}
