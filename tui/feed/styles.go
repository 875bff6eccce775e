package feed

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E8A87C")).
			Padding(0, 1)

	authorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	heartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796"))

	rippleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A5ADCB")).
			PaddingLeft(2)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E8A87C")).
			Padding(0, 1)

	unselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			PaddingTop(1)
)
