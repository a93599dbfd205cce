// ABOUTME: Note list screen with category and favorite filters
// ABOUTME: Create and edit flows use an embedded huh form

package notes

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

// favoriteFilter cycles all -> favorites only -> non-favorites.
type favoriteFilter int

const (
	favAll favoriteFilter = iota
	favOnly
	favExclude
)

func (f favoriteFilter) value() *bool {
	switch f {
	case favOnly:
		v := true
		return &v
	case favExclude:
		v := false
		return &v
	}
	return nil
}

func (f favoriteFilter) label() string {
	switch f {
	case favOnly:
		return "favorites"
	case favExclude:
		return "non-favorites"
	}
	return "all"
}

// mutationDoneMsg reports the result of a create, update, or delete.
type mutationDoneMsg struct {
	err error
}

// Model is the notes screen.
type Model struct {
	res  *client.NoteClient
	list *liststate.Model[client.Note]

	search   textinput.Model
	category textinput.Model
	cursor   int
	favorite favoriteFilter

	form         *huh.Form
	editing      *client.Note
	formTitle    string
	formContent  string
	formCategory string
	formFavorite bool

	actionErr string
	width     int
	height    int
}

// New creates the notes screen.
func New(res *client.NoteClient) *Model {
	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.Prompt = icons.Search.String() + " "
	search.CharLimit = 100

	category := textinput.New()
	category.Placeholder = "Category..."
	category.Prompt = "# "
	category.CharLimit = 50

	m := &Model{res: res, search: search, category: category}
	m.list = liststate.New[client.Note](m.fetch, client.NoteFilters{})
	return m
}

func (m *Model) fetch(ctx context.Context, filters client.Filters) ([]client.Note, error) {
	return m.res.List(ctx, filters)
}

func (m *Model) filters() client.NoteFilters {
	return client.NoteFilters{
		Category: strings.TrimSpace(m.category.Value()),
		Favorite: m.favorite.value(),
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
		m.category.Width = msg.Width / 4
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.search.Focused() {
			return m.updateInput(&m.search, msg)
		}
		if m.category.Focused() {
			return m.updateInput(&m.category, msg)
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

func (m *Model) updateInput(input *textinput.Model, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		input.Blur()
		return m, nil
	}

	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if input.Value() != before {
		return m, tea.Batch(cmd, m.list.SetFilters(m.filters()))
	}
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.search.Focus()
		return m, textinput.Blink
	case "c":
		m.category.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list.Items)-1 {
			m.cursor++
		}
	case "f":
		m.favorite = (m.favorite + 1) % 3
		return m, m.list.SetFilters(m.filters())
	case "r":
		return m, m.list.Refresh()
	case "n":
		return m, m.openForm(nil)
	case "e":
		if n := m.selected(); n != nil {
			return m, m.openForm(n)
		}
	case "x":
		if n := m.selected(); n != nil {
			return m, m.toggleFavorite(n)
		}
	case "d":
		if n := m.selected(); n != nil {
			return m, m.deleteNote(n.ID)
		}
	}
	return m, nil
}

func (m *Model) selected() *client.Note {
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

// openForm builds the create or edit form. A nil note means create.
func (m *Model) openForm(n *client.Note) tea.Cmd {
	m.editing = n
	if n != nil {
		m.formTitle = n.Title
		m.formContent = n.Content
		m.formCategory = n.Category
		m.formFavorite = n.IsFavorite
	} else {
		m.formTitle = ""
		m.formContent = ""
		m.formCategory = ""
		m.formFavorite = false
	}

	heading := "New note"
	if n != nil {
		heading = "Edit note"
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
				Value(&m.formContent),
			huh.NewInput().
				Title("Category").
				Placeholder("general").
				Value(&m.formCategory),
			huh.NewConfirm().
				Title("Favorite").
				Value(&m.formFavorite),
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

func (m *Model) submitCreate() tea.Cmd {
	create := client.NoteCreate{
		Title:      strings.TrimSpace(m.formTitle),
		Content:    m.formContent,
		Category:   strings.TrimSpace(m.formCategory),
		IsFavorite: m.formFavorite,
	}
	return func() tea.Msg {
		_, err := m.res.Create(context.Background(), create)
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) submitUpdate(id int) tea.Cmd {
	title := strings.TrimSpace(m.formTitle)
	category := strings.TrimSpace(m.formCategory)
	favorite := m.formFavorite
	update := client.NoteUpdate{
		Title:      &title,
		Content:    &m.formContent,
		Category:   &category,
		IsFavorite: &favorite,
	}
	return func() tea.Msg {
		_, err := m.res.Update(context.Background(), id, update)
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) toggleFavorite(n *client.Note) tea.Cmd {
	next := !n.IsFavorite
	id := n.ID
	return func() tea.Msg {
		_, err := m.res.Update(context.Background(), id, client.NoteUpdate{IsFavorite: &next})
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) deleteNote(id int) tea.Cmd {
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

	sb.WriteString(styles.Title.Render(icons.Note.String() + " Notes"))
	sb.WriteString("\n")

	sb.WriteString(m.search.View())
	sb.WriteString("  ")
	sb.WriteString(m.category.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("showing: " + m.favorite.label()))
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
		sb.WriteString(styles.Subtitle.Render("Loading notes..."))
	case len(m.list.Items) == 0:
		sb.WriteString(styles.DimmedRow.Render("No notes found."))
	default:
		for i, n := range m.list.Items {
			sb.WriteString(m.renderRow(i, n))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m *Model) renderRow(i int, n client.Note) string {
	category := n.Category
	if category == "" {
		category = "general"
	}
	line := fmt.Sprintf("%s %s %s", widgets.FavoriteMarker(n.IsFavorite), n.Title, styles.DimmedRow.Render("#"+category))
	if i == m.cursor {
		return styles.SelectedRow.Render("> " + line)
	}
	return "  " + line
}

// Capturing reports whether this screen is consuming raw keystrokes.
func (m *Model) Capturing() bool {
	return m.form != nil || m.search.Focused() || m.category.Focused()
}

// Shortcuts lists the footer key hints for this screen.
func (m *Model) Shortcuts() []string {
	if m.form != nil {
		return []string{"Enter Confirm", "Esc Cancel"}
	}
	if m.search.Focused() || m.category.Focused() {
		return []string{"Enter Apply", "Esc Done"}
	}
	return []string{"/ Search", "c Category", "f Favorites", "x Star", "n New", "e Edit", "d Delete", "r Refresh"}
}
