package styles

import (
	"github.com/charmbracelet/lipgloss"

	"daydash/internal/models"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// Mocha is the default color theme
var Mocha = Theme{
	Name: "Catppuccin Mocha",

	Background:    lipgloss.Color("#1e1e2e"),
	Foreground:    lipgloss.Color("#cdd6f4"),
	ForegroundDim: lipgloss.Color("#6c7086"),

	Primary:   lipgloss.Color("#89b4fa"),
	Secondary: lipgloss.Color("#cba6f7"),
	Accent:    lipgloss.Color("#89dceb"),

	Success: lipgloss.Color("#a6e3a1"),
	Warning: lipgloss.Color("#f9e2af"),
	Error:   lipgloss.Color("#f38ba8"),

	Border:      lipgloss.Color("#45475a"),
	BorderFocus: lipgloss.Color("#89b4fa"),
	Selection:   lipgloss.Color("#313244"),
}

// Current holds the active theme
var Current = Mocha

// MaxWidth is the maximum content width for the app. Wide enough for a
// seven-column month grid with event text in each cell.
const MaxWidth = 98

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// Header bar
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderDate  lipgloss.Style

	// Tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Titles
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Stat cards
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardValue lipgloss.Style
	CardHint  lipgloss.Style

	// Lists
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style

	// Calendar
	CalendarDayName      lipgloss.Style
	CalendarCell         lipgloss.Style
	CalendarCellSelected lipgloss.Style
	CalendarToday        lipgloss.Style

	// Analytics bars
	BarLabel lipgloss.Style
	BarFill  lipgloss.Style
	BarEmpty lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Status bar
	StatusBar lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Header: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(t.Border),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HeaderDate: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Tab: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2).
			MarginRight(1),

		CardTitle: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		CardValue: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		CardHint: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Italic(true),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		CalendarDayName: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Bold(true).
			Align(lipgloss.Center),

		CalendarCell: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		CalendarCellSelected: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		CalendarToday: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true),

		BarLabel: lipgloss.NewStyle().
			Foreground(t.Foreground),

		BarFill: lipgloss.NewStyle().
			Foreground(t.Primary),

		BarEmpty: lipgloss.NewStyle().
			Foreground(t.Border),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),
	}
}

// PriorityColor maps a task priority to its accent color
func PriorityColor(p models.TaskPriority) lipgloss.Color {
	switch p {
	case models.PriorityHigh:
		return Current.Error
	case models.PriorityMedium:
		return Current.Warning
	default:
		return Current.Success
	}
}

// EventColor maps an event type to its accent color
func EventColor(t models.EventType) lipgloss.Color {
	switch t {
	case models.EventMeeting:
		return Current.Primary
	case models.EventDeadline:
		return Current.Error
	case models.EventCall:
		return Current.Secondary
	default:
		return Current.Success
	}
}
