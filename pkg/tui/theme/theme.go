package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the calendar UI.
type Theme struct {
	Footer   FooterTheme
	Calendar CalendarTheme
	Ticket   TicketTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Context lipgloss.Style
	Drag    lipgloss.Style
}

// CalendarTheme styles the grid, its headers and the cursor.
type CalendarTheme struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	Label       lipgloss.Style
	Today       lipgloss.Style
	Placeholder lipgloss.Style
	Empty       lipgloss.Style
	More        lipgloss.Style
	Focus       lipgloss.Style
	Drop        lipgloss.Style
	Error       lipgloss.Style
}

// TicketTheme styles ticket lines by state.
type TicketTheme struct {
	Dragged  lipgloss.Style
	Urgent   lipgloss.Style
	High     lipgloss.Style
	Resolved lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	errorColor := lipgloss.Color("196")

	return Theme{
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Error:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
			Context: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Drag: lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("212")).
				Bold(true),
		},
		Calendar: CalendarTheme{
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
			Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
			Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Today:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			More:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Focus:       lipgloss.NewStyle().Reverse(true),
			Drop:        lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("231")),
			Error:       lipgloss.NewStyle().Foreground(errorColor),
		},
		Ticket: TicketTheme{
			Dragged:  lipgloss.NewStyle().Faint(true).Italic(true),
			Urgent:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
			High:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Resolved: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("242")),
		},
	}
}
