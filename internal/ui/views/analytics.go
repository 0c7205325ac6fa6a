package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daydash/internal/models"
	"daydash/internal/store"
	"daydash/internal/ui/styles"
)

const barWidth = 24

// AnalyticsView shows percentage breakdowns of tasks, events, and
// notes. Read-only; everything is recomputed from the snapshot on each
// render.
type AnalyticsView struct {
	store  *store.Store
	styles *styles.Styles

	width  int
	height int
}

func NewAnalyticsView(st *store.Store) *AnalyticsView {
	return &AnalyticsView{
		store:  st,
		styles: styles.NewStyles(),
	}
}

func (v *AnalyticsView) Init() tea.Cmd {
	return nil
}

func (v *AnalyticsView) Editing() bool {
	return false
}

func (v *AnalyticsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = size.Width
		v.height = size.Height
	}
	return v, nil
}

// View renders the view
func (v *AnalyticsView) View() string {
	snap := v.store.Snapshot()

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Analytics"))
	b.WriteString("\n\n")

	b.WriteString(v.renderTaskSection(snap.Tasks))
	b.WriteString("\n")
	b.WriteString(v.renderEventSection(snap.Events))
	b.WriteString("\n")
	b.WriteString(v.renderNoteSection(snap.Notes))

	return b.String()
}

func (v *AnalyticsView) renderTaskSection(tasks []models.Task) string {
	s := v.styles
	total := len(tasks)

	completed := 0
	byPriority := map[models.TaskPriority]int{}
	for _, t := range tasks {
		if t.Completed() {
			completed++
		}
		byPriority[t.Priority]++
	}

	var b strings.Builder
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("Tasks (%d)", total)))
	b.WriteString("\n")
	b.WriteString(v.renderBar("completed", completed, total, styles.Current.Success))
	b.WriteString(v.renderBar("pending", total-completed, total, styles.Current.Warning))
	for _, p := range models.AllPriorities() {
		b.WriteString(v.renderBar(string(p)+" priority", byPriority[p], total, styles.PriorityColor(p)))
	}
	return b.String()
}

func (v *AnalyticsView) renderEventSection(events []models.Event) string {
	s := v.styles
	total := len(events)

	byType := map[models.EventType]int{}
	for _, e := range events {
		byType[e.Type]++
	}

	var b strings.Builder
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("Events (%d)", total)))
	b.WriteString("\n")
	for _, t := range models.AllEventTypes() {
		b.WriteString(v.renderBar(string(t), byType[t], total, styles.EventColor(t)))
	}
	return b.String()
}

func (v *AnalyticsView) renderNoteSection(notes []models.Note) string {
	s := v.styles
	total := len(notes)

	starred := 0
	for _, n := range notes {
		if n.Starred {
			starred++
		}
	}

	var b strings.Builder
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("Notes (%d)", total)))
	b.WriteString("\n")
	b.WriteString(v.renderBar("starred", starred, total, styles.Current.Warning))
	return b.String()
}

func (v *AnalyticsView) renderBar(label string, count, total int, color lipgloss.Color) string {
	s := v.styles

	pct := 0
	if total > 0 {
		pct = count * 100 / total
	}
	filled := 0
	if total > 0 {
		filled = count * barWidth / total
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		s.BarEmpty.Render(strings.Repeat("░", barWidth-filled))

	return fmt.Sprintf("%s %s %s\n",
		s.BarLabel.Width(16).Render(label),
		bar,
		s.TitleMuted.Render(fmt.Sprintf("%3d%% (%d)", pct, count)),
	)
}
