package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple   = lipgloss.Color("#7D56F4")
	ColorGreen    = lipgloss.Color("#25A065")
	ColorRed      = lipgloss.Color("#E05252")
	ColorYellow   = lipgloss.Color("#E5C07B")
	ColorGray     = lipgloss.Color("#626262")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorOffWhite = lipgloss.Color("#D0D0D0")
	ColorCyan     = lipgloss.Color("#56B6C2")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Status panel styles
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(12)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	ElapsedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	IdleStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	TagStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	ModalLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(14)

	ModalValueStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)
)

// Status icons
const (
	IconActive = "●"
	IconIdle   = "○"
)
