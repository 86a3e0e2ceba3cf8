package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"simpletodo/internal/config"
	"simpletodo/internal/theme"
	"simpletodo/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// Notices collects the notices the store emits during one update. Pass the
// same value to todo.WithNotifier and to New.
type Notices struct {
	pending []todo.Notice
}

func (q *Notices) Notify(n todo.Notice) { q.pending = append(q.pending, n) }

func (q *Notices) take() (todo.Notice, bool) {
	if len(q.pending) == 0 {
		return todo.Notice{}, false
	}
	n := q.pending[len(q.pending)-1]
	q.pending = q.pending[:0]
	return n, true
}

type toast struct {
	notice todo.Notice
	seq    int
}

type toastExpiredMsg struct{ seq int }

type Model struct {
	store   *todo.Store
	themes  *theme.Provider
	notices *Notices
	logger  *log.Logger

	cfg      config.Config
	keys     keyMap
	editKeys inputKeys
	help     help.Model
	styles   styles

	input  textinput.Model
	mode   mode
	cursor int
	toast  *toast
	seq    int
}

// New wires a view over store. Notices queued in notices are shown on the
// toast line.
func New(store *todo.Store, notices *Notices, themes *theme.Provider, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.Width = 40

	keys := newKeyMap(cfg.Keys)
	return Model{
		store:    store,
		themes:   themes,
		notices:  notices,
		logger:   logger,
		cfg:      cfg,
		keys:     keys,
		editKeys: inputKeys{Confirm: keys.Confirm, Cancel: keys.Cancel},
		help:     help.New(),
		styles:   newStyles(themes.Theme()),
		input:    ti,
		mode:     modeList,
	}
}

func Run(store *todo.Store, notices *Notices, themes *theme.Provider, cfg config.Config, logger *log.Logger) error {
	m := New(store, notices, themes, cfg, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.mode {
		case modeAdd:
			m, cmd = m.updateAddMode(msg)
		case modeEdit:
			m, cmd = m.updateEditMode(msg)
		default:
			m, cmd = m.updateListMode(msg)
		}
		m.cursor = clampCursor(m.cursor, len(m.store.Visible()))
		noticeCmd := m.showNotice()
		return m, tea.Batch(cmd, noticeCmd)
	case toastExpiredMsg:
		if m.toast != nil && m.toast.seq == msg.seq {
			m.toast = nil
		}
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-16, 10)
		m.help.Width = msg.Width - 4
	}
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.store.Visible()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "Add a new task..."
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.Toggle(t.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.store.Delete(t.ID)
		}
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok || t.Completed {
			return m, nil
		}
		return m.beginEdit(t)
	case key.Matches(msg, m.keys.CycleFilter):
		m.store.SetFilter(m.store.State().Filter.Next())
	case key.Matches(msg, m.keys.FilterAll):
		m.store.SetFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.store.SetFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.FilterDone):
		m.store.SetFilter(todo.FilterCompleted)
	case key.Matches(msg, m.keys.ClearCompleted):
		m.store.ClearCompleted()
	case key.Matches(msg, m.keys.ToggleTheme):
		t, err := m.themes.Toggle()
		if err != nil {
			m.logger.Error("toggle theme", "err", err)
		}
		m.styles = newStyles(t)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if err := m.store.Add(m.input.Value()); err != nil {
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		if m.store.State().Filter != todo.FilterCompleted {
			m.cursor = len(m.store.Visible()) - 1
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) beginEdit(t todo.Todo) (Model, tea.Cmd) {
	m.store.BeginEdit(t.ID)
	m.mode = modeEdit
	m.input.SetValue(m.store.State().Edit.EditText)
	m.input.Placeholder = "Edit task..."
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateEditMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.store.CancelEdit()
		return m.leaveEdit(), nil
	case key.Matches(msg, m.keys.Confirm):
		if err := m.store.SaveEdit(); err != nil {
			return m, nil
		}
		return m.leaveEdit(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetEditText(m.input.Value())
	if !m.store.State().Edit.Active() {
		return m.leaveEdit(), cmd
	}
	return m, cmd
}

func (m Model) leaveEdit() Model {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	return m
}

// showNotice moves the latest store notice to the toast line and schedules
// its removal.
func (m *Model) showNotice() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	n, ok := m.notices.take()
	if !ok {
		return nil
	}
	m.seq++
	seq := m.seq
	m.toast = &toast{notice: n, seq: seq}
	return tea.Tick(m.cfg.NoticeDuration(), func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m Model) selected() (todo.Todo, bool) {
	visible := m.store.Visible()
	if len(visible) == 0 {
		return todo.Todo{}, false
	}
	return visible[clampCursor(m.cursor, len(visible))], true
}

func (m Model) View() string {
	var b strings.Builder
	state := m.store.State()

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderAddField())
	b.WriteString("\n\n")
	b.WriteString(m.renderFilters(state.Filter))
	b.WriteString("\n\n")
	b.WriteString(m.renderTodoList(state))
	b.WriteString("\n")

	active, completed := state.Counts()
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("%d active, %d completed", active, completed)))

	if m.toast != nil {
		b.WriteString("\n\n")
		b.WriteString(m.renderToast(m.toast.notice))
	}

	b.WriteString("\n\n")
	if m.mode == modeList {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.View(m.editKeys))
	}
	return m.styles.panel.Render(b.String())
}

func (m Model) renderHeader() string {
	glyph := m.styles.accent.Render(fmt.Sprintf("%s %s", m.styles.themeGlyph, m.cfg.Keys.ToggleTheme))
	return m.styles.title.Render("Simple Todo") + "   " + glyph
}

func (m Model) renderAddField() string {
	if m.mode == modeAdd {
		return m.input.View()
	}
	return m.styles.muted.Render(fmt.Sprintf("Press %s to add a new task...", m.cfg.Keys.Add))
}

func (m Model) renderFilters(current todo.Filter) string {
	parts := make([]string, 0, 3)
	for _, f := range todo.Filters() {
		style := m.styles.filterOff
		if f == current {
			style = m.styles.filterOn
		}
		parts = append(parts, style.Render(filterLabel(f)))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTodoList(state todo.State) string {
	visible := state.Visible()
	if len(visible) == 0 {
		return m.styles.muted.Render(emptyText(state.Filter)) + "\n"
	}
	var b strings.Builder
	for i, t := range visible {
		focused := i == m.cursor && m.mode != modeAdd
		cursor := "  "
		if focused {
			cursor = m.styles.selected.Render("> ")
		}

		checkbox := boxUnchecked
		if t.Completed {
			checkbox = boxChecked
		}

		var body string
		switch {
		case state.Editing(t.ID) && m.mode == modeEdit:
			body = m.input.View()
		case t.Completed:
			body = m.styles.done.Render(t.Text)
		default:
			body = t.Text
		}

		line := fmt.Sprintf("%s%s %s", cursor, checkbox, body)
		if focused && !state.Editing(t.ID) {
			line += "  " + m.styles.muted.Render(deleteGlyph+" "+m.cfg.Keys.Delete)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderToast(n todo.Notice) string {
	style := m.styles.noticeNormal
	if n.Variant == todo.VariantDestructive {
		style = m.styles.noticeError
	}
	return style.Render(n.Title) + " " + m.styles.muted.Render(n.Description)
}

func filterLabel(f todo.Filter) string {
	switch f {
	case todo.FilterActive:
		return "Active"
	case todo.FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

func emptyText(f todo.Filter) string {
	switch f {
	case todo.FilterActive:
		return "No active todos!"
	case todo.FilterCompleted:
		return "No completed todos!"
	default:
		return "No todos yet. Add one above!"
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
