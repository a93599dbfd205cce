// ABOUTME: Post list screen with status filter, search, and publish cycling
// ABOUTME: Create and edit flows use an embedded huh form with tag editing

package posts

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

// statusCycle drives the filter bar; empty means "all".
var statusCycle = []string{"", client.PostStatusDraft, client.PostStatusPublished, client.PostStatusArchived}

// mutationDoneMsg reports the result of a create, update, or delete.
type mutationDoneMsg struct {
	err error
}

// Model is the posts screen.
type Model struct {
	res  *client.PostClient
	list *liststate.Model[client.Post]

	search    textinput.Model
	cursor    int
	statusIdx int

	form        *huh.Form
	editing     *client.Post
	formTitle   string
	formContent string
	formStatus  string
	formTags    string

	actionErr string
	width     int
	height    int
}

// New creates the posts screen.
func New(res *client.PostClient) *Model {
	search := textinput.New()
	search.Placeholder = "Search posts..."
	search.Prompt = icons.Search.String() + " "
	search.CharLimit = 100

	m := &Model{res: res, search: search}
	m.list = liststate.New[client.Post](m.fetch, client.PostFilters{})
	return m
}

func (m *Model) fetch(ctx context.Context, filters client.Filters) ([]client.Post, error) {
	return m.res.List(ctx, filters)
}

func (m *Model) filters() client.PostFilters {
	return client.PostFilters{
		Status: statusCycle[m.statusIdx],
		Search: strings.TrimSpace(m.search.Value()),
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
	case "r":
		return m, m.list.Refresh()
	case "n":
		return m, m.openForm(nil)
	case "e":
		if p := m.selected(); p != nil {
			return m, m.openForm(p)
		}
	case "x":
		if p := m.selected(); p != nil {
			return m, m.cycleStatus(p)
		}
	case "d":
		if p := m.selected(); p != nil {
			return m, m.deletePost(p.ID)
		}
	}
	return m, nil
}

func (m *Model) selected() *client.Post {
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

// openForm builds the create or edit form. A nil post means create.
func (m *Model) openForm(p *client.Post) tea.Cmd {
	m.editing = p
	if p != nil {
		m.formTitle = p.Title
		m.formContent = p.Content
		m.formStatus = p.Status
		m.formTags = strings.Join(p.Tags, ", ")
	} else {
		m.formTitle = ""
		m.formContent = ""
		m.formStatus = client.PostStatusDraft
		m.formTags = ""
	}

	heading := "New post"
	if p != nil {
		heading = "Edit post"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
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
				Title("Content").
				Value(&m.formContent).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("content is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Draft", client.PostStatusDraft),
					huh.NewOption("Published", client.PostStatusPublished),
					huh.NewOption("Archived", client.PostStatusArchived),
				).
				Value(&m.formStatus),
			huh.NewInput().
				Title("Tags").
				Placeholder("go, tui, charm").
				Value(&m.formTags),
		).Title(heading),
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

// parseTags splits a comma-separated tag line, dropping empties.
func parseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (m *Model) submitCreate() tea.Cmd {
	create := client.PostCreate{
		Title:   strings.TrimSpace(m.formTitle),
		Content: m.formContent,
		Status:  m.formStatus,
		Tags:    parseTags(m.formTags),
	}
	return func() tea.Msg {
		_, err := m.res.Create(context.Background(), create)
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) submitUpdate(id int) tea.Cmd {
	title := strings.TrimSpace(m.formTitle)
	tags := parseTags(m.formTags)
	update := client.PostUpdate{
		Title:   &title,
		Content: &m.formContent,
		Status:  &m.formStatus,
		Tags:    &tags,
	}
	return func() tea.Msg {
		_, err := m.res.Update(context.Background(), id, update)
		return mutationDoneMsg{err: err}
	}
}

// cycleStatus advances draft -> published -> archived -> draft.
func (m *Model) cycleStatus(p *client.Post) tea.Cmd {
	var next string
	switch p.Status {
	case client.PostStatusDraft:
		next = client.PostStatusPublished
	case client.PostStatusPublished:
		next = client.PostStatusArchived
	default:
		next = client.PostStatusDraft
	}
	id := p.ID
	return func() tea.Msg {
		_, err := m.res.Update(context.Background(), id, client.PostUpdate{Status: &next})
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) deletePost(id int) tea.Cmd {
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

	sb.WriteString(styles.Title.Render(icons.Post.String() + " Posts"))
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
		sb.WriteString(styles.Subtitle.Render("Loading posts..."))
	case len(m.list.Items) == 0:
		sb.WriteString(styles.DimmedRow.Render("No posts found."))
	default:
		for i, p := range m.list.Items {
			sb.WriteString(m.renderRow(i, p))
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
	return styles.Help.Render("status: " + status)
}

func (m *Model) renderRow(i int, p client.Post) string {
	line := fmt.Sprintf("%s %s", widgets.PostStatusBadge(p.Status), p.Title)
	if len(p.Tags) > 0 {
		line += " " + styles.DimmedRow.Render("["+strings.Join(p.Tags, ", ")+"]")
	}
	if p.ViewCount > 0 {
		line += " " + styles.DimmedRow.Render(fmt.Sprintf("%d views", p.ViewCount))
	}
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
	return []string{"/ Search", "s Status", "x Publish", "n New", "e Edit", "d Delete", "r Refresh"}
}
