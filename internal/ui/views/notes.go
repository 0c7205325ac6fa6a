package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daydash/internal/models"
	"daydash/internal/store"
	"daydash/internal/ui/keys"
	"daydash/internal/ui/styles"
)

type noteItem struct {
	note models.Note
}

func (i noteItem) Title() string       { return i.note.Title }
func (i noteItem) Description() string { return i.note.Content }
func (i noteItem) FilterValue() string { return i.note.Title + " " + i.note.Content }

type noteDelegate struct {
	styles *styles.Styles
	width  int
}

func (d noteDelegate) Height() int                               { return 2 }
func (d noteDelegate) Spacing() int                              { return 1 }
func (d noteDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d noteDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	n, ok := item.(noteItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 16)

	var titleStyle, metaStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		metaStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		metaStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	title := n.note.Title
	if n.note.Starred {
		title = "★ " + title
	}

	preview := strings.ReplaceAll(n.note.Content, "\n", " ")
	if len(preview) > width-12 && width > 12 {
		preview = preview[:width-12]
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(title), metaStyle.Render(n.note.Date+"  "+preview))
}

// NotesView shows the notes list next to an editor pane. Edits are
// buffered locally and only reach the store on save; leaving edit mode
// without saving discards them.
type NotesView struct {
	store    *store.Store
	styles   *styles.Styles
	keys     keys.KeyMap
	list     list.Model
	delegate *noteDelegate

	width       int
	height      int
	editorWidth int

	selectedID int64

	editMode     bool
	editTitle    textinput.Model
	editContent  textarea.Model
	editFocusIdx int // 0=title, 1=content

	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string
}

// NewNotesView creates a new notes view
func NewNotesView(st *store.Store) *NotesView {
	s := styles.NewStyles()

	delegate := &noteDelegate{styles: s, width: 30}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Notes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	editTitle := textinput.New()
	editTitle.Placeholder = "Note title"
	editTitle.CharLimit = 200

	editContent := textarea.New()
	editContent.Placeholder = "Write something..."
	editContent.CharLimit = 10000
	editContent.ShowLineNumbers = false

	return &NotesView{
		store:       st,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		list:        l,
		delegate:    delegate,
		editTitle:   editTitle,
		editContent: editContent,
	}
}

func (v *NotesView) Init() tea.Cmd {
	return nil
}

// Editing reports whether a text input currently has focus
func (v *NotesView) Editing() bool {
	return v.editMode || v.confirmingDelete || v.list.FilterState() == list.Filtering
}

// reloadItems rebuilds the list from the store snapshot, keeping the
// selection on the same note where possible.
func (v *NotesView) reloadItems() {
	notes := v.store.Snapshot().Notes

	items := make([]list.Item, len(notes))
	selIdx := 0
	for i, n := range notes {
		items[i] = noteItem{note: n}
		if n.ID == v.selectedID {
			selIdx = i
		}
	}
	v.list.SetItems(items)
	if len(items) > 0 {
		v.list.Select(selIdx)
		v.selectedID = items[selIdx].(noteItem).note.ID
	} else {
		v.selectedID = 0
	}
}

// selectedNote returns the note under the list cursor
func (v *NotesView) selectedNote() (models.Note, bool) {
	item, ok := v.list.SelectedItem().(noteItem)
	if !ok {
		return models.Note{}, false
	}
	return item.note, true
}

func (v *NotesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		listWidth := contentWidth / 3
		v.delegate.width = listWidth
		v.list.SetSize(listWidth, msg.Height-8)
		v.editorWidth = clamp(contentWidth-listWidth-8, 20, 70)
		v.editContent.SetWidth(v.editorWidth)
		v.editContent.SetHeight(max(msg.Height-16, 4))
		return v, nil

	case StoreLoadedMsg:
		v.reloadItems()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editMode {
			return v.updateEditing(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *NotesView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter input is open, every key belongs to it.
	if v.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.New):
		note := models.Note{
			ID:      store.NextID(),
			Title:   "New Note",
			Content: "",
			Date:    store.Today(),
			Starred: false,
		}
		v.store.Dispatch(store.AddNote{Note: note})
		v.selectedID = note.ID
		v.reloadItems()
		v.startEdit(note)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
		if note, ok := v.selectedNote(); ok {
			v.startEdit(note)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Star):
		if note, ok := v.selectedNote(); ok {
			v.selectedID = note.ID
			v.store.Dispatch(store.ToggleStarNote{ID: note.ID})
			v.reloadItems()
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if note, ok := v.selectedNote(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = note.ID
			v.deleteTargetName = note.Title
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	if note, ok := v.selectedNote(); ok {
		v.selectedID = note.ID
	}
	return v, cmd
}

func (v *NotesView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.store.Dispatch(store.DeleteNote{ID: v.deleteTargetID})
		v.confirmingDelete = false
		if v.selectedID == v.deleteTargetID {
			v.selectedID = 0
		}
		v.reloadItems()
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *NotesView) startEdit(note models.Note) {
	v.editMode = true
	v.editFocusIdx = 0
	v.editTitle.SetValue(note.Title)
	v.editContent.SetValue(note.Content)
	v.updateEditFocus()
}

func (v *NotesView) updateEditFocus() {
	v.editTitle.Blur()
	v.editContent.Blur()

	if v.editFocusIdx == 0 {
		v.editTitle.Focus()
	} else {
		v.editContent.Focus()
	}
}

func (v *NotesView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		// Unsaved edits are discarded.
		v.editMode = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		v.saveEdit()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 2
		v.updateEditFocus()
		return v, nil
	}

	var cmd tea.Cmd
	if v.editFocusIdx == 0 {
		v.editTitle, cmd = v.editTitle.Update(msg)
	} else {
		v.editContent, cmd = v.editContent.Update(msg)
	}
	return v, cmd
}

func (v *NotesView) saveEdit() {
	note, ok := v.selectedNote()
	if !ok {
		v.editMode = false
		return
	}

	note.Title = v.editTitle.Value()
	note.Content = v.editContent.Value()
	v.store.Dispatch(store.UpdateNote{Note: note})

	v.editMode = false
	v.reloadItems()
}

// View renders the view
func (v *NotesView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	left := v.list.View()
	right := v.renderPane()

	divider := lipgloss.NewStyle().
		Foreground(styles.Current.Border).
		Render(strings.Repeat("│\n", max(v.height-9, 1)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", divider, " ", right)

	hints := v.styles.Help.Render(
		v.styles.HelpKey.Render("n") + v.styles.HelpDesc.Render(" new  ") +
			v.styles.HelpKey.Render("e") + v.styles.HelpDesc.Render(" edit  ") +
			v.styles.HelpKey.Render("s") + v.styles.HelpDesc.Render(" star  ") +
			v.styles.HelpKey.Render("d") + v.styles.HelpDesc.Render(" delete  ") +
			v.styles.HelpKey.Render("/") + v.styles.HelpDesc.Render(" search"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, body, hints)
}

func (v *NotesView) renderPane() string {
	s := v.styles

	if v.editMode {
		var b strings.Builder
		titleStyle := s.Input
		if v.editFocusIdx == 0 {
			titleStyle = s.InputFocused
		}
		b.WriteString(titleStyle.Width(v.editorWidth + 2).Render(v.editTitle.View()))
		b.WriteString("\n")
		b.WriteString(v.editContent.View())
		b.WriteString("\n")
		b.WriteString(s.TitleMuted.Render("ctrl+s save · esc discard"))
		return b.String()
	}

	note, ok := v.selectedNote()
	if !ok {
		return s.TitleMuted.Render("Select a note or create a new one")
	}

	title := note.Title
	if note.Starred {
		title = "★ " + title
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(s.TitleMuted.Render(note.Date))
	b.WriteString("\n\n")

	content := note.Content
	if content == "" {
		content = s.TitleMuted.Render("No content")
	}
	wrapWidth := clamp(styles.ContentWidth(v.width)*2/3-6, 20, 70)
	b.WriteString(lipgloss.NewStyle().Width(wrapWidth).Render(content))

	return b.String()
}

func (v *NotesView) renderDeleteConfirm() string {
	prompt := fmt.Sprintf("Delete note %q? (y/n)", v.deleteTargetName)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Current.Error).
		Padding(1, 3).
		Render(prompt)
	return lipgloss.Place(v.width, v.height-6, lipgloss.Center, lipgloss.Center, box)
}
