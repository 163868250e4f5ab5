package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jscyril/grootman/internal/ui/components"
)

// HomeView shows the featured slideshow
type HomeView struct {
	Slideshow components.Slideshow
}

// NewHomeView creates a home view over the given panels
func NewHomeView(panels []components.Panel, width int) HomeView {
	return HomeView{Slideshow: components.NewSlideshow(panels, width)}
}

// Update handles messages
func (v HomeView) Update(msg tea.Msg) (HomeView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "h", "[", ",":
			v.Slideshow.Prev()
		case "l", "]", ".":
			v.Slideshow.Next()
		}
	}
	return v, nil
}

// View renders the home view
func (v HomeView) View() string {
	if v.Slideshow.Len() == 0 {
		return ""
	}
	return v.Slideshow.View() + "\n" + "  [h] previous  [l] next"
}
