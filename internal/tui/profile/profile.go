// ABOUTME: Profile screen showing account details with an edit form
// ABOUTME: Saves changes through the profile endpoint and reports the new user

package profile

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/taskflow/cli/internal/client"
	"github.com/taskflow/cli/internal/tui/icons"
	"github.com/taskflow/cli/internal/tui/styles"
)

// UpdatedMsg is sent when a profile edit is saved, so other screens can
// pick up the new name and email.
type UpdatedMsg struct {
	User client.User
}

// savedMsg carries the save result back into the model.
type savedMsg struct {
	user client.User
	err  error
}

// Model is the profile screen.
type Model struct {
	c    *client.Client
	user client.User

	form         *huh.Form
	formEmail    string
	formFullName string

	actionErr string
	saved     bool
}

// New creates the profile screen for the signed-in user.
func New(c *client.Client, user client.User) *Model {
	return &Model{c: c, user: user}
}

// SetUser replaces the displayed user.
func (m *Model) SetUser(user client.User) {
	m.user = user
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if msg.String() == "e" {
			return m, m.openForm()
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.actionErr = msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.actionErr = ""
		m.saved = true
		return m, func() tea.Msg { return UpdatedMsg{User: msg.user} }
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m *Model) openForm() tea.Cmd {
	m.formEmail = m.user.Email
	m.formFullName = m.user.FullName
	m.saved = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email")
					}
					return nil
				}),
			huh.NewInput().
				Title("Full name").
				Value(&m.formFullName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("enter a full name")
					}
					return nil
				}),
		).Title("Edit profile"),
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
		m.form = nil
		return m, m.save()
	}
	return m, cmd
}

// save sends only the fields that actually changed.
func (m *Model) save() tea.Cmd {
	var update client.ProfileUpdate
	if email := strings.TrimSpace(m.formEmail); email != m.user.Email {
		update.Email = &email
	}
	if name := strings.TrimSpace(m.formFullName); name != m.user.FullName {
		update.FullName = &name
	}
	if update.Email == nil && update.FullName == nil {
		return nil
	}
	return func() tea.Msg {
		user, err := m.c.UpdateProfile(context.Background(), update)
		return savedMsg{user: user, err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.form != nil {
		return m.form.View()
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Profile.String() + " Profile"))
	sb.WriteString("\n")

	if m.actionErr != "" {
		sb.WriteString(styles.ErrorBanner.Render(m.actionErr))
		sb.WriteString("\n")
	}
	if m.saved {
		sb.WriteString(styles.StatusOK.Render("Profile updated."))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Name:   %s\n", styles.ValueStyle.Render(m.user.FullName)))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", styles.ValueStyle.Render(m.user.Email)))
	sb.WriteString(fmt.Sprintf("Member: %s\n", styles.DimmedRow.Render(m.user.CreatedAt)))

	return sb.String()
}

// Capturing reports whether this screen is consuming raw keystrokes.
func (m *Model) Capturing() bool {
	return m.form != nil
}

// Shortcuts lists the footer key hints for this screen.
func (m *Model) Shortcuts() []string {
	if m.form != nil {
		return []string{"Enter Confirm", "Esc Cancel"}
	}
	return []string{"e Edit"}
}
