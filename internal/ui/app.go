package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daydash/internal/store"
	"daydash/internal/ui/styles"
	"daydash/internal/ui/views"
)

// Tab identifies the currently active view
type Tab int

const (
	TabDashboard Tab = iota
	TabTasks
	TabCalendar
	TabNotes
	TabAnalytics
)

var tabNames = []string{"Dashboard", "Tasks", "Calendar", "Notes", "Analytics"}

// tabView is implemented by every tab. Views are pointer types that
// mutate in place; the returned model from Update is ignored.
type tabView interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Model, tea.Cmd)
	View() string

	// Editing reports whether the view currently owns the keyboard
	// (an input is focused or a modal flow is open), in which case
	// tab switching is suspended.
	Editing() bool
}

type App struct {
	store  *store.Store
	styles *styles.Styles

	tab    Tab
	tabs   []tabView
	width  int
	height int
	loaded bool
}

// NewApp creates the application model
func NewApp(st *store.Store) *App {
	return &App{
		store:  st,
		styles: styles.NewStyles(),
		tab:    TabDashboard,
		tabs: []tabView{
			views.NewDashboardView(st),
			views.NewTaskView(st),
			views.NewCalendarView(st),
			views.NewNotesView(st),
			views.NewAnalyticsView(st),
		},
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.load}
	for _, t := range a.tabs {
		cmds = append(cmds, t.Init())
	}
	return tea.Batch(cmds...)
}

// load runs the store's startup protocol off the input loop
func (a *App) load() tea.Msg {
	a.store.Load()
	return views.StoreLoadedMsg{}
}

func (a *App) active() tabView {
	return a.tabs[a.tab]
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// All views track their own size.
		var cmds []tea.Cmd
		for _, t := range a.tabs {
			_, cmd := t.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case views.StoreLoadedMsg:
		a.loaded = true
		var cmds []tea.Cmd
		for _, t := range a.tabs {
			_, cmd := t.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.active().Editing() {
			switch msg.String() {
			case "tab":
				a.tab = Tab((int(a.tab) + 1) % len(a.tabs))
				return a, nil
			case "shift+tab":
				a.tab = Tab((int(a.tab) + len(a.tabs) - 1) % len(a.tabs))
				return a, nil
			case "1", "2", "3", "4", "5":
				a.tab = Tab(int(msg.String()[0] - '1'))
				return a, nil
			}
		}
	}

	_, cmd := a.active().Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if !a.loaded {
		return styles.CenterView(
			a.styles.TitleMuted.Padding(2, 2).Render("Loading..."),
			a.width, a.height,
		)
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.active().View())
	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())

	return styles.CenterView(b.String(), a.width, a.height)
}

func (a *App) renderHeader() string {
	s := a.styles

	var tabs []string
	for i, name := range tabNames {
		style := s.Tab
		if Tab(i) == a.tab {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(name))
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)

	title := s.HeaderTitle.Render("daydash")
	date := s.HeaderDate.Render(store.Today())

	contentWidth := styles.ContentWidth(a.width)
	gap := contentWidth - lipgloss.Width(title) - lipgloss.Width(tabRow) - lipgloss.Width(date) - 2
	if gap < 1 {
		gap = 1
	}

	return s.Header.Width(contentWidth).Render(
		title + " " + tabRow + strings.Repeat(" ", gap) + date,
	)
}

func (a *App) renderStatusBar() string {
	s := a.styles
	hint := "tab/1-5 switch · q quit"
	if a.active().Editing() {
		hint = "esc back"
	}
	return s.StatusBar.Render(hint)
}
