package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/grootman/api"
)

// SelectTrackMsg asks the player to select a catalog row
type SelectTrackMsg struct {
	Index int
}

// TrackList represents a scrollable list of catalog rows
type TrackList struct {
	Items    []api.Track
	Selected int
	// Playing is the highlighted row, -1 for none
	Playing int
	Height  int
	Width   int
	Offset  int
	// Top is the screen row of the first list line, used for mouse hits
	Top   int
	Title string

	SelectedStyle lipgloss.Style
	PlayingStyle  lipgloss.Style
	NormalStyle   lipgloss.Style
	CoverStyle    lipgloss.Style
	TitleStyle    lipgloss.Style
}

// NewTrackList creates a new track list
func NewTrackList(height, width int) TrackList {
	return TrackList{
		Playing: -1,
		Height:  height,
		Width:   width,
		SelectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Bold(true).
			Padding(0, 1),
		PlayingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true).
			Padding(0, 1),
		NormalStyle: lipgloss.NewStyle().
			Padding(0, 1),
		CoverStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1),
	}
}

// SetItems sets the list items
func (l *TrackList) SetItems(items []api.Track) {
	l.Items = items
	l.Selected = 0
	l.Offset = 0
}

// Update handles messages for the track list
func (l TrackList) Update(msg tea.Msg) (TrackList, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home":
			l.Selected = 0
			l.Offset = 0
		case "end":
			if len(l.Items) > 0 {
				l.Selected = len(l.Items) - 1
				l.ensureVisible()
			}
		case "pgup":
			l.PageUp()
		case "pgdown":
			l.PageDown()
		case "enter":
			if track, ok := l.SelectedItem(); ok {
				return l, selectTrack(track.Index)
			}
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			l.MoveUp()
		case tea.MouseButtonWheelDown:
			l.MoveDown()
		case tea.MouseButtonLeft:
			if row := l.RowAt(msg.Y); row >= 0 {
				l.Selected = row
				return l, selectTrack(l.Items[row].Index)
			}
		}
	}
	return l, nil
}

func selectTrack(index int) tea.Cmd {
	return func() tea.Msg { return SelectTrackMsg{Index: index} }
}

// RowAt returns the item rendered on screen row y, or -1
func (l TrackList) RowAt(y int) int {
	first := l.Top
	if l.Title != "" {
		first += 2
	}
	row := l.Offset + y - first
	if y < first || row >= l.Offset+l.visibleHeight() || row >= len(l.Items) {
		return -1
	}
	return row
}

// MoveUp moves selection up
func (l *TrackList) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
		l.ensureVisible()
	}
}

// MoveDown moves selection down
func (l *TrackList) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
		l.ensureVisible()
	}
}

// PageUp moves selection up by a page
func (l *TrackList) PageUp() {
	l.Selected = max(l.Selected-l.visibleHeight(), 0)
	l.ensureVisible()
}

// PageDown moves selection down by a page
func (l *TrackList) PageDown() {
	l.Selected = max(min(l.Selected+l.visibleHeight(), len(l.Items)-1), 0)
	l.ensureVisible()
}

func (l TrackList) visibleHeight() int {
	return max(l.Height-2, 1) // title and counter
}

// ensureVisible ensures the selected item is visible
func (l *TrackList) ensureVisible() {
	if l.Selected < l.Offset {
		l.Offset = l.Selected
	} else if l.Selected >= l.Offset+l.visibleHeight() {
		l.Offset = l.Selected - l.visibleHeight() + 1
	}
}

// SelectedItem returns the track under the cursor
func (l TrackList) SelectedItem() (api.Track, bool) {
	if l.Selected >= 0 && l.Selected < len(l.Items) {
		return l.Items[l.Selected], true
	}
	return api.Track{}, false
}

// View renders the track list
func (l TrackList) View() string {
	var sb strings.Builder

	if l.Title != "" {
		sb.WriteString(l.TitleStyle.Render(l.Title))
		sb.WriteString("\n")
	}

	if len(l.Items) == 0 {
		sb.WriteString(l.NormalStyle.Render("No tracks"))
		return sb.String()
	}

	end := min(l.Offset+l.visibleHeight(), len(l.Items))
	for i := l.Offset; i < end; i++ {
		track := l.Items[i]
		line := truncate(fmt.Sprintf("%d. %s", track.Index+1, track.SongName), l.Width-4)
		if track.CoverPath != "" {
			line += " " + l.CoverStyle.Render(truncate(track.CoverPath, 30))
		}

		if i == l.Playing {
			line = "♪ " + line
		}

		switch {
		case i == l.Selected:
			sb.WriteString(l.SelectedStyle.Render(line))
		case i == l.Playing:
			sb.WriteString(l.PlayingStyle.Render(line))
		default:
			sb.WriteString(l.NormalStyle.Render(line))
		}

		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	if len(l.Items) > l.visibleHeight() {
		sb.WriteString("\n")
		sb.WriteString(l.NormalStyle.Render(fmt.Sprintf("  [%d/%d]", l.Selected+1, len(l.Items))))
	}

	return sb.String()
}

// truncate shortens s to maxLen runes
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen < 4 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
