// ABOUTME: Task list screen with filter bar, debounced search, and CRUD actions
// ABOUTME: Create and edit flows use an embedded huh form

package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/taskflow/cli/internal/client"
	"github.com/taskflow/cli/internal/tui/icons"
	"github.com/taskflow/cli/internal/tui/liststate"
	"github.com/taskflow/cli/internal/tui/styles"
	"github.com/taskflow/cli/internal/tui/widgets"
)

// statusCycle and priorityCycle drive the filter bar; empty means "all".
var (
	statusCycle   = []string{"", client.TaskStatusPending, client.TaskStatusInProgress, client.TaskStatusCompleted}
	priorityCycle = []string{"", client.TaskPriorityLow, client.TaskPriorityMedium, client.TaskPriorityHigh}
)

// mutationDoneMsg reports the result of a create, update, or delete.
type mutationDoneMsg struct {
	err error
}

// Model is the tasks screen.
type Model struct {
	res  *client.TaskClient
	list *liststate.Model[client.Task]

	search      textinput.Model
	cursor      int
	statusIdx   int
	priorityIdx int

	form         *huh.Form
	editing      *client.Task
	formTitle    string
	formDesc     string
	formStatus   string
	formPriority string

	actionErr string
	width     int
	height    int
}

// New creates the tasks screen.
func New(res *client.TaskClient) *Model {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.Prompt = icons.Search.String() + " "
	search.CharLimit = 100

	m := &Model{res: res, search: search}
	m.list = liststate.New[client.Task](m.fetch, client.TaskFilters{})
	return m
}

func (m *Model) fetch(ctx context.Context, filters client.Filters) ([]client.Task, error) {
	return m.res.List(ctx, filters)
}

func (m *Model) filters() client.TaskFilters {
	return client.TaskFilters{
		Status:   statusCycle[m.statusIdx],
		Priority: priorityCycle[m.priorityIdx],
		Search:   strings.TrimSpace(m.search.Value()),
	}
}

// Init issues the initial fetch.
func (m *Model) Init() tea.Cmd {
	return m.list.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = msg.Width / 3
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)

	case mutationDoneMsg:
		if msg.err != nil {
			m.actionErr = msg.err.Error()
			return m, nil
		}
		m.actionErr = ""
		return m, m.list.Refresh()
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	cmd := m.list.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.list.SetFilters(m.filters()))
	}
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.search.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list.Items)-1 {
			m.cursor++
		}
	case "s":
		m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
		return m, m.list.SetFilters(m.filters())
	case "p":
		m.priorityIdx = (m.priorityIdx + 1) % len(priorityCycle)
		return m, m.list.SetFilters(m.filters())
	case "r":
		return m, m.list.Refresh()
	case "n":
		return m, m.openForm(nil)
	case "e":
		if t := m.selected(); t != nil {
			return m, m.openForm(t)
		}
	case "x":
		if t := m.selected(); t != nil {
			return m, m.toggleComplete(t)
		}
	case "d":
		if t := m.selected(); t != nil {
			return m, m.deleteTask(t.ID)
		}
	}
	return m, nil
}

func (m *Model) selected() *client.Task {
	if m.cursor < 0 || m.cursor >= len(m.list.Items) {
		return nil
	}
	return &m.list.Items[m.cursor]
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.list.Items) {
		m.cursor = len(m.list.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// openForm builds the create or edit form. A nil task means create.
func (m *Model) openForm(t *client.Task) tea.Cmd {
	m.editing = t
	if t != nil {
		m.formTitle = t.Title
		m.formDesc = t.Description
		m.formStatus = t.Status
		m.formPriority = t.Priority
	} else {
		m.formTitle = ""
		m.formDesc = ""
		m.formStatus = client.TaskStatusPending
		m.formPriority = client.TaskPriorityMedium
	}

	heading := "New task"
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&m.formTitle).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
		huh.NewText().
			Title("Description").
			Value(&m.formDesc),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("Low", client.TaskPriorityLow),
				huh.NewOption("Medium", client.TaskPriorityMedium),
				huh.NewOption("High", client.TaskPriorityHigh),
			).
			Value(&m.formPriority),
	}
	if t != nil {
		heading = "Edit task"
		// Status is server-assigned on create; only editable afterwards.
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Pending", client.TaskStatusPending),
					huh.NewOption("In progress", client.TaskStatusInProgress),
					huh.NewOption("Completed", client.TaskStatusCompleted),
				).
				Value(&m.formStatus),
		)
	}

	m.form = huh.NewForm(
		huh.NewGroup(fields...).Title(heading),
	).WithTheme(huh.ThemeBase())

	return m.form.Init()
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.form = nil
		return m, nil
	case huh.StateCompleted:
		editing := m.editing
		m.form = nil
		if editing != nil {
			return m, m.submitUpdate(editing.ID)
		}
		return m, m.submitCreate()
	}
	return m, cmd
}

func (m *Model) submitCreate() tea.Cmd {
	create := client.TaskCreate{
		Title:       strings.TrimSpace(m.formTitle),
		Description: m.formDesc,
		Priority:    m.formPriority,
	}
	return func() tea.Msg {
		_, err := m.res.Create(context.Background(), create)
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) submitUpdate(id int) tea.Cmd {
	title := strings.TrimSpace(m.formTitle)
	update := client.TaskUpdate{
		Title:       &title,
		Description: &m.formDesc,
		Status:      &m.formStatus,
		Priority:    &m.formPriority,
	}
	return func() tea.Msg {
		_, err := m.res.Update(context.Background(), id, update)
		return mutationDoneMsg{err: err}
	}
}

// toggleComplete marks a task completed, or reopens a completed one.
func (m *Model) toggleComplete(t *client.Task) tea.Cmd {
	next := client.TaskStatusCompleted
	if t.Status == client.TaskStatusCompleted {
		next = client.TaskStatusPending
	}
	id := t.ID
	return func() tea.Msg {
		_, err := m.res.Update(context.Background(), id, client.TaskUpdate{Status: &next})
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) deleteTask(id int) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: m.res.Delete(context.Background(), id)}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.form != nil {
		return m.form.View()
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Task.String() + " Tasks"))
	sb.WriteString("\n")

	sb.WriteString(m.search.View())
	sb.WriteString("\n")
	sb.WriteString(m.filterBar())
	sb.WriteString("\n\n")

	if m.actionErr != "" {
		sb.WriteString(styles.ErrorBanner.Render(m.actionErr))
		sb.WriteString("\n")
	}
	if m.list.Err != "" {
		sb.WriteString(styles.ErrorBanner.Render(m.list.Err))
		sb.WriteString("\n")
	}

	switch {
	case m.list.Loading && len(m.list.Items) == 0:
		sb.WriteString(styles.Subtitle.Render("Loading tasks..."))
	case len(m.list.Items) == 0:
		sb.WriteString(styles.DimmedRow.Render("No tasks found."))
	default:
		for i, t := range m.list.Items {
			sb.WriteString(m.renderRow(i, t))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m *Model) filterBar() string {
	status := "all"
	if s := statusCycle[m.statusIdx]; s != "" {
		status = s
	}
	priority := "all"
	if p := priorityCycle[m.priorityIdx]; p != "" {
		priority = p
	}
	return styles.Help.Render(fmt.Sprintf("status: %s  priority: %s", status, priority))
}

func (m *Model) renderRow(i int, t client.Task) string {
	line := fmt.Sprintf("%s %s %s", widgets.TaskStatusBadge(t.Status), widgets.PriorityBadge(t.Priority), t.Title)
	if i == m.cursor {
		return styles.SelectedRow.Render("> " + line)
	}
	return "  " + line
}

// Capturing reports whether this screen is consuming raw keystrokes.
func (m *Model) Capturing() bool {
	return m.form != nil || m.search.Focused()
}

// Shortcuts lists the footer key hints for this screen.
func (m *Model) Shortcuts() []string {
	if m.form != nil {
		return []string{"Enter Confirm", "Esc Cancel"}
	}
	if m.search.Focused() {
		return []string{"Enter Apply", "Esc Done"}
	}
	return []string{"/ Search", "s Status", "p Priority", "x Toggle", "n New", "e Edit", "d Delete", "r Refresh"}
}
