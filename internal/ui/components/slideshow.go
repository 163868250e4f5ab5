package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel is one slide
type Panel struct {
	Title string
	Body  string
}

// Slideshow shows one panel at a time and wraps in both directions
type Slideshow struct {
	panels  []Panel
	visible int

	Width      int
	TitleStyle lipgloss.Style
	BodyStyle  lipgloss.Style
	DotStyle   lipgloss.Style
	FrameStyle lipgloss.Style
}

// NewSlideshow creates a slideshow showing the first panel
func NewSlideshow(panels []Panel, width int) Slideshow {
	return Slideshow{
		panels: panels,
		Width:  width,
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		BodyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		DotStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		FrameStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
	}
}

// Visible returns the index of the shown panel, -1 when there are none
func (s Slideshow) Visible() int {
	if len(s.panels) == 0 {
		return -1
	}
	return s.visible
}

// Len returns the number of panels
func (s Slideshow) Len() int {
	return len(s.panels)
}

// Next shows the following panel, wrapping to the first
func (s *Slideshow) Next() {
	if len(s.panels) == 0 {
		return
	}
	s.visible = (s.visible + 1) % len(s.panels)
}

// Prev shows the preceding panel, wrapping to the last
func (s *Slideshow) Prev() {
	if len(s.panels) == 0 {
		return
	}
	s.visible = (s.visible - 1 + len(s.panels)) % len(s.panels)
}

// View renders the visible panel with a position marker
func (s Slideshow) View() string {
	if len(s.panels) == 0 {
		return ""
	}
	p := s.panels[s.visible]

	dots := make([]string, len(s.panels))
	for i := range dots {
		dots[i] = "○"
		if i == s.visible {
			dots[i] = "●"
		}
	}

	body := fmt.Sprintf("%s\n\n%s\n\n%s",
		s.TitleStyle.Render(p.Title),
		s.BodyStyle.Render(p.Body),
		s.DotStyle.Render("‹  "+strings.Join(dots, " ")+"  ›"),
	)
	return s.FrameStyle.Width(max(s.Width-4, 20)).Render(body)
}
