package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Rising emissions are bad news, so an upward trend is drawn in
// the warning colour and a downward trend in the OK colour.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("242")
	ColorHighlight = lipgloss.Color("213")
	ColorWarning   = lipgloss.Color("196")
	ColorOK        = lipgloss.Color("42")
	ColorError     = lipgloss.Color("203")
	ColorSpark     = lipgloss.Color("75")
)

// Trend icons.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
	IconCursor     = "▸"
)

//nolint:gochecknoglobals // Shared immutable styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	focusStyle   = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	sparkStyle   = lipgloss.NewStyle().Foreground(ColorSpark)
	upStyle      = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	downStyle    = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	neutralStyle = lipgloss.NewStyle().Foreground(ColorMuted).Bold(true)
)
