package views

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daydash/internal/models"
	"daydash/internal/store"
	"daydash/internal/ui/styles"
)

// DashboardView shows the derived stats cards plus short previews of
// pending tasks and upcoming events. Read-only.
type DashboardView struct {
	store  *store.Store
	styles *styles.Styles

	width  int
	height int
}

func NewDashboardView(st *store.Store) *DashboardView {
	return &DashboardView{
		store:  st,
		styles: styles.NewStyles(),
	}
}

func (v *DashboardView) Init() tea.Cmd {
	return nil
}

func (v *DashboardView) Editing() bool {
	return false
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = size.Width
		v.height = size.Height
	}
	return v, nil
}

// View renders the view
func (v *DashboardView) View() string {
	snap := v.store.Snapshot()
	if snap.IsLoading {
		return v.styles.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(v.renderCards(snap.Stats))
	b.WriteString("\n\n")
	b.WriteString(v.renderPreviews(snap))
	return b.String()
}

func (v *DashboardView) renderCards(stats models.Stats) string {
	completionHint := "No tasks yet"
	if stats.TotalTasks > 0 {
		pct := stats.CompletedTasks * 100 / stats.TotalTasks
		completionHint = fmt.Sprintf("%d%% completion rate", pct)
	}

	upcomingHint := "No upcoming tasks"
	if stats.UpcomingTasks > 0 {
		upcomingHint = "Tasks due soon"
	}

	eventsHint := "No events scheduled"
	if stats.TotalEvents > 0 {
		eventsHint = "Scheduled events"
	}

	cards := []string{
		v.renderCard("Total Tasks", stats.TotalTasks, completionHint),
		v.renderCard("Completed", stats.CompletedTasks, fmt.Sprintf("%d remaining", stats.TotalTasks-stats.CompletedTasks)),
		v.renderCard("Upcoming", stats.UpcomingTasks, upcomingHint),
		v.renderCard("Events", stats.TotalEvents, eventsHint),
	}

	// Two rows of two at narrow widths.
	if styles.ContentWidth(v.width) < 88 {
		top := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3])
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (v *DashboardView) renderCard(title string, value int, hint string) string {
	s := v.styles
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.CardTitle.Render(title),
		s.CardValue.Render(fmt.Sprintf("%d", value)),
		s.CardHint.Render(hint),
	)
	return s.Card.Width(20).Render(content)
}

func (v *DashboardView) renderPreviews(snap store.State) string {
	s := v.styles

	var left strings.Builder
	left.WriteString(s.Title.Render("Pending Tasks"))
	left.WriteString("\n")
	shown := 0
	for _, t := range snap.Tasks {
		if t.Completed() {
			continue
		}
		if shown == 5 {
			break
		}
		badge := lipgloss.NewStyle().Foreground(styles.PriorityColor(t.Priority)).Render(string(t.Priority))
		left.WriteString(s.ListItem.Render(fmt.Sprintf("○ %s  %s %s", t.Title, s.TitleMuted.Render(t.DueDate), badge)))
		left.WriteString("\n")
		shown++
	}
	if shown == 0 {
		left.WriteString(s.TitleMuted.Render("  All caught up"))
		left.WriteString("\n")
	}

	var right strings.Builder
	right.WriteString(s.Title.Render("Upcoming Events"))
	right.WriteString("\n")
	today := store.Today()
	upcoming := make([]models.Event, 0, len(snap.Events))
	for _, e := range snap.Events {
		if e.Date >= today {
			upcoming = append(upcoming, e)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Date < upcoming[j].Date })
	if len(upcoming) > 4 {
		upcoming = upcoming[:4]
	}
	for _, e := range upcoming {
		marker := lipgloss.NewStyle().Foreground(styles.EventColor(e.Type)).Render("●")
		right.WriteString(s.ListItem.Render(fmt.Sprintf("%s %s  %s %s", marker, e.Title, s.TitleMuted.Render(e.Date), s.TitleMuted.Render(e.Time))))
		right.WriteString("\n")
	}
	if len(upcoming) == 0 {
		right.WriteString(s.TitleMuted.Render("  Nothing scheduled"))
		right.WriteString("\n")
	}

	half := max(styles.ContentWidth(v.width)/2-2, 24)
	leftPane := lipgloss.NewStyle().Width(half).Render(left.String())
	rightPane := lipgloss.NewStyle().Width(half).Render(right.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}
