package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daydash/internal/models"
	"daydash/internal/store"
	"daydash/internal/ui/keys"
	"daydash/internal/ui/styles"
)

// CalendarView shows a month grid of events
type CalendarView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	year  int
	month time.Month
	day   int // selected day of month, 1-based

	// Day detail (events of the selected day)
	viewingDay bool
	dayCursor  int

	// Add event form
	adding      bool
	addTitle    textinput.Model
	addDate     textinput.Model
	addTime     textinput.Model
	addType     int // index into models.AllEventTypes()
	addFocusIdx int // 0=title, 1=date, 2=time, 3=type, 4=save

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string
}

// NewCalendarView creates a calendar view positioned on the current month
func NewCalendarView(st *store.Store) *CalendarView {
	s := styles.NewStyles()
	now := time.Now()

	addTitle := textinput.New()
	addTitle.Placeholder = "Event title"
	addTitle.CharLimit = 200

	addDate := textinput.New()
	addDate.Placeholder = models.DateLayout
	addDate.CharLimit = 10

	addTime := textinput.New()
	addTime.Placeholder = "09:00"
	addTime.CharLimit = 10

	return &CalendarView{
		store:    st,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		year:     now.Year(),
		month:    now.Month(),
		day:      now.Day(),
		addTitle: addTitle,
		addDate:  addDate,
		addTime:  addTime,
	}
}

func (v *CalendarView) Init() tea.Cmd {
	return nil
}

// Editing reports whether a modal flow is active
func (v *CalendarView) Editing() bool {
	return v.adding || v.viewingDay || v.confirmingDelete
}

// daysInMonth returns the number of days in the viewed month
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// firstWeekday returns the weekday of the first of the month, Sunday=0
func firstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// dateString formats a cell date in the wire format
func dateString(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

func (v *CalendarView) selectedDate() string {
	return dateString(v.year, v.month, v.day)
}

// eventsOn returns the events on the given date, in insertion order
func (v *CalendarView) eventsOn(date string) []models.Event {
	var out []models.Event
	for _, e := range v.store.Snapshot().Events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

func (v *CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.adding {
			return v.updateAdding(msg)
		}
		if v.viewingDay {
			return v.updateViewingDay(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *CalendarView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Left):
		v.day = clamp(v.day-1, 1, daysInMonth(v.year, v.month))
		return v, nil

	case key.Matches(msg, v.keys.Right):
		v.day = clamp(v.day+1, 1, daysInMonth(v.year, v.month))
		return v, nil

	case key.Matches(msg, v.keys.Up):
		v.day = clamp(v.day-7, 1, daysInMonth(v.year, v.month))
		return v, nil

	case key.Matches(msg, v.keys.Down):
		v.day = clamp(v.day+7, 1, daysInMonth(v.year, v.month))
		return v, nil

	case msg.String() == "[", msg.String() == "pgup":
		v.shiftMonth(-1)
		return v, nil

	case msg.String() == "]", msg.String() == "pgdown":
		v.shiftMonth(1)
		return v, nil

	case key.Matches(msg, v.keys.Today):
		now := time.Now()
		v.year, v.month, v.day = now.Year(), now.Month(), now.Day()
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startAdd(v.selectedDate())
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Enter):
		if len(v.eventsOn(v.selectedDate())) > 0 {
			v.viewingDay = true
			v.dayCursor = 0
		}
		return v, nil
	}

	return v, nil
}

func (v *CalendarView) shiftMonth(delta int) {
	t := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	v.year, v.month = t.Year(), t.Month()
	v.day = clamp(v.day, 1, daysInMonth(v.year, v.month))
}

func (v *CalendarView) updateViewingDay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	events := v.eventsOn(v.selectedDate())
	if len(events) == 0 {
		v.viewingDay = false
		return v, nil
	}
	v.dayCursor = clamp(v.dayCursor, 0, len(events)-1)

	switch {
	case key.Matches(msg, v.keys.Back):
		v.viewingDay = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.dayCursor > 0 {
			v.dayCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.dayCursor < len(events)-1 {
			v.dayCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.viewingDay = false
		v.startAdd(v.selectedDate())
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		v.confirmingDelete = true
		v.deleteTargetID = events[v.dayCursor].ID
		v.deleteTargetName = events[v.dayCursor].Title
		return v, nil

	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}

	return v, nil
}

func (v *CalendarView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.store.Dispatch(store.DeleteEvent{ID: v.deleteTargetID})
		v.confirmingDelete = false
		if len(v.eventsOn(v.selectedDate())) == 0 {
			v.viewingDay = false
		}
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *CalendarView) startAdd(date string) {
	v.adding = true
	v.addFocusIdx = 0
	v.addType = 0
	v.addTitle.Reset()
	v.addDate.SetValue(date)
	v.addTime.SetValue("09:00")
	v.updateAddFocus()
}

func (v *CalendarView) updateAddFocus() {
	v.addTitle.Blur()
	v.addDate.Blur()
	v.addTime.Blur()

	switch v.addFocusIdx {
	case 0:
		v.addTitle.Focus()
	case 1:
		v.addDate.Focus()
	case 2:
		v.addTime.Focus()
	}
}

func (v *CalendarView) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.adding = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		v.saveAdd()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.addFocusIdx = (v.addFocusIdx + 1) % 5
		v.updateAddFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.addFocusIdx = (v.addFocusIdx + 4) % 5
		v.updateAddFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.addFocusIdx == 4 {
			v.saveAdd()
			return v, nil
		}
		v.addFocusIdx++
		v.updateAddFocus()
		return v, nil

	case key.Matches(msg, v.keys.Left), key.Matches(msg, v.keys.Right):
		if v.addFocusIdx == 3 {
			n := len(models.AllEventTypes())
			if key.Matches(msg, v.keys.Left) {
				v.addType = (v.addType + n - 1) % n
			} else {
				v.addType = (v.addType + 1) % n
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.addFocusIdx {
	case 0:
		v.addTitle, cmd = v.addTitle.Update(msg)
	case 1:
		v.addDate, cmd = v.addDate.Update(msg)
	case 2:
		v.addTime, cmd = v.addTime.Update(msg)
	}
	return v, cmd
}

func (v *CalendarView) saveAdd() {
	title := strings.TrimSpace(v.addTitle.Value())
	if title == "" {
		v.adding = false
		return
	}

	date := strings.TrimSpace(v.addDate.Value())
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		date = v.selectedDate()
	}

	v.store.Dispatch(store.AddEvent{Event: models.Event{
		ID:    store.NextID(),
		Title: title,
		Date:  date,
		Time:  strings.TrimSpace(v.addTime.Value()),
		Type:  models.AllEventTypes()[v.addType],
	}})

	v.adding = false
}

// View renders the view
func (v *CalendarView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.adding {
		return v.renderAddForm()
	}
	if v.viewingDay {
		return v.renderDayDetail()
	}
	return v.renderMonth()
}

func (v *CalendarView) renderMonth() string {
	s := v.styles
	var b strings.Builder

	monthName := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	b.WriteString(s.Title.Render(monthName))
	b.WriteString("\n\n")

	contentWidth := styles.ContentWidth(v.width)
	cellWidth := max(contentWidth/7-4, 8)

	var dayNames []string
	for _, name := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		dayNames = append(dayNames, s.CalendarDayName.Width(cellWidth+4).Render(name))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, dayNames...))
	b.WriteString("\n")

	days := daysInMonth(v.year, v.month)
	first := firstWeekday(v.year, v.month)
	today := store.Today()

	day := 1
	for day <= days {
		var cells []string
		for col := 0; col < 7; col++ {
			if (day == 1 && col < first) || day > days {
				cells = append(cells, lipgloss.NewStyle().Width(cellWidth+4).Render(""))
				continue
			}
			cells = append(cells, v.renderDayCell(day, cellWidth, today))
			day++
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString(s.Help.Render(
		s.HelpKey.Render("←↑↓→") + s.HelpDesc.Render(" move  ") +
			s.HelpKey.Render("[ ]") + s.HelpDesc.Render(" month  ") +
			s.HelpKey.Render("t") + s.HelpDesc.Render(" today  ") +
			s.HelpKey.Render("n") + s.HelpDesc.Render(" add  ") +
			s.HelpKey.Render("enter") + s.HelpDesc.Render(" day events"),
	))

	return b.String()
}

func (v *CalendarView) renderDayCell(day, cellWidth int, today string) string {
	s := v.styles
	date := dateString(v.year, v.month, day)

	num := fmt.Sprintf("%2d", day)
	if date == today {
		num = s.CalendarToday.Render(num)
	}

	lines := []string{num}
	events := v.eventsOn(date)
	for i, e := range events {
		if i == 2 {
			lines = append(lines, s.TitleMuted.Render(fmt.Sprintf("+%d more", len(events)-2)))
			break
		}
		label := strings.TrimSpace(e.Time + " " + e.Title)
		if len(label) > cellWidth {
			label = label[:cellWidth]
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.EventColor(e.Type)).Render(label))
	}
	for len(lines) < 3 {
		lines = append(lines, "")
	}

	cellStyle := s.CalendarCell
	if day == v.day {
		cellStyle = s.CalendarCellSelected
	}
	return cellStyle.Width(cellWidth + 2).Render(strings.Join(lines, "\n"))
}

func (v *CalendarView) renderDayDetail() string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Events on " + v.selectedDate()))
	b.WriteString("\n\n")

	events := v.eventsOn(v.selectedDate())
	for i, e := range events {
		itemStyle := s.ListItem
		if i == v.dayCursor {
			itemStyle = s.ListSelected
		}
		marker := lipgloss.NewStyle().Foreground(styles.EventColor(e.Type)).Render("●")
		b.WriteString(itemStyle.Render(fmt.Sprintf("%s %s  %s  (%s)", marker, e.Time, e.Title, e.Type)))
		b.WriteString("\n")
	}

	b.WriteString(s.Help.Render(
		s.HelpKey.Render("d") + s.HelpDesc.Render(" delete  ") +
			s.HelpKey.Render("n") + s.HelpDesc.Render(" add  ") +
			s.HelpKey.Render("esc") + s.HelpDesc.Render(" back"),
	))

	return b.String()
}

func (v *CalendarView) renderAddForm() string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Add Event"))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		view  string
		idx   int
		width int
	}{
		{"Title", v.addTitle.View(), 0, 50},
		{"Date", v.addDate.View(), 1, 16},
		{"Time", v.addTime.View(), 2, 12},
	}
	for _, f := range fields {
		style := s.Input
		if v.addFocusIdx == f.idx {
			style = s.InputFocused
		}
		b.WriteString(s.TitleMuted.Render(f.label))
		b.WriteString("\n")
		b.WriteString(style.Width(f.width).Render(f.view))
		b.WriteString("\n")
	}

	b.WriteString(s.TitleMuted.Render("Type"))
	b.WriteString("\n")
	var types []string
	for i, t := range models.AllEventTypes() {
		style := s.Button
		if i == v.addType {
			style = s.ButtonFocused
		}
		types = append(types, style.Render(string(t)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, types...))
	b.WriteString("\n\n")

	saveStyle := s.Button
	if v.addFocusIdx == 4 {
		saveStyle = s.ButtonFocused
	}
	b.WriteString(saveStyle.Render("Add Event"))
	b.WriteString("\n")
	b.WriteString(s.Help.Render(
		s.HelpKey.Render("tab") + s.HelpDesc.Render(" next field  ") +
			s.HelpKey.Render("ctrl+s") + s.HelpDesc.Render(" save  ") +
			s.HelpKey.Render("esc") + s.HelpDesc.Render(" cancel"),
	))

	return b.String()
}

func (v *CalendarView) renderDeleteConfirm() string {
	prompt := fmt.Sprintf("Delete event %q? (y/n)", v.deleteTargetName)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Current.Error).
		Padding(1, 3).
		Render(prompt)
	return lipgloss.Place(v.width, v.height-6, lipgloss.Center, lipgloss.Center, box)
}
