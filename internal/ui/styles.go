package ui

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	OK    lipgloss.Style
	Fail  lipgloss.Style
	Box   lipgloss.Style
}

// NewStyles builds styles for t. With NoColorTheme the styles keep their
// layout but render no color.
func NewStyles(t Theme) Styles {
	colored := t.Name != NoColorTheme.Name
	s := Styles{
		Title: lipgloss.NewStyle().Foreground(t.Accent),
		Label: lipgloss.NewStyle().Foreground(t.Dim),
		Value: lipgloss.NewStyle(),
		OK:    lipgloss.NewStyle().Foreground(t.Good),
		Fail:  lipgloss.NewStyle().Foreground(t.Bad),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
	}
	if colored {
		s.Title = s.Title.Bold(true)
		s.Value = s.Value.Bold(true)
	}
	return s
}

// CurrentStyles returns styles for the active theme.
func CurrentStyles() Styles {
	return NewStyles(GetCurrentTheme())
}
