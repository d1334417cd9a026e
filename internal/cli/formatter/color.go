package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TypeStyle returns the style for an event type, using the type's own color.
func TypeStyle(t domain.EventType) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color()))
}

// TypeLabel renders the type name in its color.
func TypeLabel(t domain.EventType) string {
	return TypeStyle(t).Render(string(t))
}

// TypeBadge renders the type icon followed by its name, e.g. "◉ Meeting".
func TypeBadge(t domain.EventType) string {
	return TypeStyle(t).Render(t.Icon() + " " + string(t))
}

// StateStyle returns the lipgloss style for a tracking state.
func StateStyle(s domain.EventState) lipgloss.Style {
	switch s {
	case domain.StateRunning:
		return StyleGreen
	case domain.StatePaused:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StateIndicator returns a colored state marker such as "● RUNNING".
func StateIndicator(s domain.EventState) string {
	switch s {
	case domain.StateRunning:
		return StyleGreen.Render("● RUNNING")
	case domain.StatePaused:
		return StyleYellow.Render("○ PAUSED")
	case domain.StateStopped:
		return StyleDim.Render("■ STOPPED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
