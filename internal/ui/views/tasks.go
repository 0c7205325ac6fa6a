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

// StoreLoadedMsg is broadcast once the store has finished its initial
// load.
type StoreLoadedMsg struct{}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// TaskView shows the task list with a quick-add input and an edit form
type TaskView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	cursor  int
	scrollY int

	// Quick add
	quickAdd    textinput.Model
	quickAdding bool

	// Edit form
	editing      bool
	editID       int64
	editTitle    textinput.Model
	editDue      textinput.Model
	editPriority int // index into models.AllPriorities()
	editFocusIdx int // 0=title, 1=due, 2=priority, 3=save

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string
}

// NewTaskView creates a new task view
func NewTaskView(st *store.Store) *TaskView {
	s := styles.NewStyles()

	quickAdd := textinput.New()
	quickAdd.Placeholder = "Add a new task..."
	quickAdd.CharLimit = 200

	editTitle := textinput.New()
	editTitle.Placeholder = "Task title"
	editTitle.CharLimit = 200

	editDue := textinput.New()
	editDue.Placeholder = models.DateLayout
	editDue.CharLimit = 10

	return &TaskView{
		store:     st,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		quickAdd:  quickAdd,
		editTitle: editTitle,
		editDue:   editDue,
	}
}

func (v *TaskView) Init() tea.Cmd {
	return nil
}

// Editing reports whether a text input currently has focus
func (v *TaskView) Editing() bool {
	return v.quickAdding || v.editing || v.confirmingDelete
}

func (v *TaskView) tasks() []models.Task {
	return v.store.Snapshot().Tasks
}

func (v *TaskView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case StoreLoadedMsg:
		v.cursor = 0
		v.scrollY = 0
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.quickAdding {
			return v.updateQuickAdd(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := v.tasks()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible(len(tasks))
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(tasks)-1 {
			v.cursor++
			v.ensureVisible(len(tasks))
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.quickAdding = true
		v.quickAdd.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Toggle):
		if len(tasks) > 0 {
			v.toggleStatus(tasks[v.cursor])
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if len(tasks) > 0 {
			v.startEdit(tasks[v.cursor])
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if len(tasks) > 0 {
			v.confirmingDelete = true
			v.deleteTargetID = tasks[v.cursor].ID
			v.deleteTargetName = tasks[v.cursor].Title
		}
		return v, nil
	}

	return v, nil
}

func (v *TaskView) updateQuickAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.quickAdding = false
		v.quickAdd.Blur()
		v.quickAdd.Reset()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		title := strings.TrimSpace(v.quickAdd.Value())
		if title != "" {
			// Quick-added tasks default to pending, medium priority,
			// due today.
			v.store.Dispatch(store.AddTask{Task: models.Task{
				ID:       store.NextID(),
				Title:    title,
				Status:   models.TaskPending,
				Priority: models.PriorityMedium,
				DueDate:  store.Today(),
			}})
		}
		v.quickAdd.Reset()
		v.quickAdding = false
		v.quickAdd.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.quickAdd, cmd = v.quickAdd.Update(msg)
	return v, cmd
}

func (v *TaskView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.store.Dispatch(store.DeleteTask{ID: v.deleteTargetID})
		v.confirmingDelete = false
		v.cursor = clamp(v.cursor, 0, max(0, len(v.tasks())-1))
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		v.saveEdit()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 4
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + 3) % 4
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.editFocusIdx == 3 {
			v.saveEdit()
			return v, nil
		}
		v.editFocusIdx++
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Left), key.Matches(msg, v.keys.Right):
		if v.editFocusIdx == 2 {
			n := len(models.AllPriorities())
			if key.Matches(msg, v.keys.Left) {
				v.editPriority = (v.editPriority + n - 1) % n
			} else {
				v.editPriority = (v.editPriority + 1) % n
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case 1:
		v.editDue, cmd = v.editDue.Update(msg)
	}
	return v, cmd
}

func (v *TaskView) toggleStatus(task models.Task) {
	if task.Completed() {
		task.Status = models.TaskPending
	} else {
		task.Status = models.TaskCompleted
	}
	v.store.Dispatch(store.UpdateTask{Task: task})
}

func (v *TaskView) startEdit(task models.Task) {
	v.editing = true
	v.editID = task.ID
	v.editFocusIdx = 0
	v.editTitle.SetValue(task.Title)
	v.editDue.SetValue(task.DueDate)
	v.editPriority = 0
	for i, p := range models.AllPriorities() {
		if p == task.Priority {
			v.editPriority = i
		}
	}
	v.updateEditFocus()
}

func (v *TaskView) updateEditFocus() {
	v.editTitle.Blur()
	v.editDue.Blur()

	switch v.editFocusIdx {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editDue.Focus()
	}
}

func (v *TaskView) saveEdit() {
	title := strings.TrimSpace(v.editTitle.Value())
	if title == "" {
		v.editing = false
		return
	}

	due := strings.TrimSpace(v.editDue.Value())
	if _, err := time.Parse(models.DateLayout, due); err != nil {
		due = store.Today()
	}

	for _, task := range v.tasks() {
		if task.ID != v.editID {
			continue
		}
		task.Title = title
		task.DueDate = due
		task.Priority = models.AllPriorities()[v.editPriority]
		v.store.Dispatch(store.UpdateTask{Task: task})
		break
	}

	v.editing = false
}

func (v *TaskView) ensureVisible(total int) {
	// Each task item is 2 lines + 1 margin
	availableHeight := v.height - 12
	if availableHeight < 3 {
		availableHeight = 3
	}
	visibleItems := max(availableHeight/3, 1)

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
	v.scrollY = clamp(v.scrollY, 0, max(0, total-1))
}

// View renders the view
func (v *TaskView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Tasks"))
	b.WriteString("\n\n")

	inputStyle := v.styles.Input
	if v.quickAdding {
		inputStyle = v.styles.InputFocused
	}
	inputWidth := clamp(styles.ContentWidth(v.width)-6, 20, 60)
	b.WriteString(inputStyle.Width(inputWidth).Render(v.quickAdd.View()))
	b.WriteString("\n\n")

	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		v.styles.HelpKey.Render("n") + v.styles.HelpDesc.Render(" add  ") +
			v.styles.HelpKey.Render("space") + v.styles.HelpDesc.Render(" toggle  ") +
			v.styles.HelpKey.Render("e") + v.styles.HelpDesc.Render(" edit  ") +
			v.styles.HelpKey.Render("d") + v.styles.HelpDesc.Render(" delete"),
	))

	return b.String()
}

func (v *TaskView) renderTaskList() string {
	s := v.styles
	tasks := v.tasks()

	if len(tasks) == 0 {
		return s.TitleMuted.Render("No tasks yet. Press 'n' to add your first task.")
	}

	availableHeight := max(v.height-12, 3)
	visibleItems := max(availableHeight/3, 1)

	var items []string
	endIdx := min(v.scrollY+visibleItems, len(tasks))

	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(tasks[i], i == v.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles

	check := "○"
	titleStyle := lipgloss.NewStyle().Foreground(styles.Current.Foreground)
	if task.Completed() {
		check = "●"
		titleStyle = titleStyle.Foreground(styles.Current.ForegroundDim).Strikethrough(true)
	}

	badge := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(task.Priority)).
		Render(string(task.Priority))

	line1 := fmt.Sprintf("%s %s", check, titleStyle.Render(task.Title))
	line2 := s.TitleMuted.Render(fmt.Sprintf("  Due: %s  ", task.DueDate)) + badge

	itemStyle := s.ListItem.MarginBottom(1)
	if selected {
		itemStyle = s.ListSelected.MarginBottom(1)
	}

	width := clamp(styles.ContentWidth(v.width)-4, 20, styles.MaxWidth-4)
	return itemStyle.Width(width).Render(line1 + "\n" + line2)
}

func (v *TaskView) renderEditForm() string {
	s := v.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Edit Task"))
	b.WriteString("\n\n")

	titleStyle := s.Input
	if v.editFocusIdx == 0 {
		titleStyle = s.InputFocused
	}
	b.WriteString(titleStyle.Width(50).Render(v.editTitle.View()))
	b.WriteString("\n\n")

	dueStyle := s.Input
	if v.editFocusIdx == 1 {
		dueStyle = s.InputFocused
	}
	b.WriteString(s.TitleMuted.Render("Due date"))
	b.WriteString("\n")
	b.WriteString(dueStyle.Width(16).Render(v.editDue.View()))
	b.WriteString("\n\n")

	b.WriteString(s.TitleMuted.Render("Priority"))
	b.WriteString("\n")
	var priorities []string
	for i, p := range models.AllPriorities() {
		style := s.Button
		if i == v.editPriority {
			style = s.ButtonFocused
		}
		if v.editFocusIdx == 2 && i == v.editPriority {
			style = style.BorderForeground(styles.Current.BorderFocus)
		}
		priorities = append(priorities, style.Render(string(p)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, priorities...))
	b.WriteString("\n\n")

	saveStyle := s.Button
	if v.editFocusIdx == 3 {
		saveStyle = s.ButtonFocused
	}
	b.WriteString(saveStyle.Render("Save"))
	b.WriteString("\n")
	b.WriteString(s.Help.Render(
		s.HelpKey.Render("tab") + s.HelpDesc.Render(" next field  ") +
			s.HelpKey.Render("ctrl+s") + s.HelpDesc.Render(" save  ") +
			s.HelpKey.Render("esc") + s.HelpDesc.Render(" cancel"),
	))

	return b.String()
}

func (v *TaskView) renderDeleteConfirm() string {
	prompt := fmt.Sprintf("Delete task %q? (y/n)", v.deleteTargetName)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Current.Error).
		Padding(1, 3).
		Render(prompt)
	return lipgloss.Place(v.width, v.height-6, lipgloss.Center, lipgloss.Center, box)
}
