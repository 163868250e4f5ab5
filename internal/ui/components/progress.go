package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders playback progress with elapsed and total labels
type ProgressBar struct {
	Width int
	// Percent is 0-100
	Percent     float64
	Elapsed     string
	Total       string
	BarChar     string
	EmptyChar   string
	ShowTime    bool
	Style       lipgloss.Style
	FilledStyle lipgloss.Style
	EmptyStyle  lipgloss.Style
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int) ProgressBar {
	return ProgressBar{
		Width:       width,
		Elapsed:     "0:00",
		Total:       "0:00",
		BarChar:     "█",
		EmptyChar:   "░",
		ShowTime:    true,
		Style:       lipgloss.NewStyle(),
		FilledStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		EmptyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// SetProgress sets the bar position and labels. When valid is false the
// bar keeps its previous position.
func (p *ProgressBar) SetProgress(percent float64, valid bool, elapsed, total string) {
	if valid {
		p.Percent = percent
	}
	p.Elapsed = elapsed
	p.Total = total
}

// View renders the progress bar
func (p ProgressBar) View() string {
	var sb strings.Builder

	fraction := min(max(p.Percent/100, 0), 1)

	barWidth := max(p.Width-14, 10) // room for the time labels
	filled := int(float64(barWidth) * fraction)
	empty := barWidth - filled

	sb.WriteString(p.FilledStyle.Render(strings.Repeat(p.BarChar, filled)))
	sb.WriteString(p.EmptyStyle.Render(strings.Repeat(p.EmptyChar, empty)))

	if p.ShowTime {
		sb.WriteString(" ")
		sb.WriteString(p.Elapsed)
		sb.WriteString("/")
		sb.WriteString(p.Total)
	}

	return p.Style.Render(sb.String())
}
