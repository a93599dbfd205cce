// ABOUTME: Login and signup screen as a bubbletea model
// ABOUTME: Wraps a huh form and emits a submit message with the credentials

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/taskflow/cli/internal/tui/styles"
)

// Mode selects between the login and signup variants of the form.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// SubmitMsg is sent when the user submits the form.
type SubmitMsg struct {
	Mode     Mode
	Email    string
	Password string
	FullName string
}

// CancelledMsg is sent when the user backs out of the form.
type CancelledMsg struct{}

// Login is the authentication form screen.
type Login struct {
	form       *huh.Form
	mode       Mode
	err        string
	submitting bool
	width      int

	email    string
	password string
	fullName string
}

// New creates the screen in login mode.
func New() *Login {
	l := &Login{mode: ModeLogin}
	l.form = l.buildForm()
	return l
}

func (l *Login) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&l.email).
			Validate(validateEmail),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&l.password).
			Validate(validateRequired("password")),
	}
	title := "Log in"
	if l.mode == ModeSignup {
		fields = append(fields,
			huh.NewInput().
				Title("Full name").
				Placeholder("Ada Lovelace").
				Value(&l.fullName).
				Validate(validateRequired("full name")),
		)
		title = "Create account"
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(title),
	).WithTheme(huh.ThemeBase())
}

func validateEmail(s string) error {
	if !strings.Contains(s, "@") {
		return errRequired("a valid email")
	}
	return nil
}

func validateRequired(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errRequired(what)
		}
		return nil
	}
}

type validationError string

func (e validationError) Error() string { return string(e) }

func errRequired(what string) error {
	return validationError("enter " + what)
}

// Mode returns the current form mode.
func (l *Login) Mode() Mode {
	return l.mode
}

// ToggleMode switches between login and signup and resets the form.
func (l *Login) ToggleMode() tea.Cmd {
	if l.mode == ModeLogin {
		l.mode = ModeSignup
	} else {
		l.mode = ModeLogin
	}
	l.err = ""
	l.submitting = false
	l.form = l.buildForm()
	return l.form.Init()
}

// SetError displays a failure message and re-arms the form for retry.
func (l *Login) SetError(msg string) tea.Cmd {
	l.err = msg
	l.submitting = false
	l.form = l.buildForm()
	return l.form.Init()
}

// Init implements tea.Model.
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model.
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return l, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted && !l.submitting {
		l.submitting = true
		submit := SubmitMsg{
			Mode:     l.mode,
			Email:    strings.TrimSpace(l.email),
			Password: l.password,
			FullName: strings.TrimSpace(l.fullName),
		}
		return l, func() tea.Msg { return submit }
	}

	return l, cmd
}

// View implements tea.Model.
func (l *Login) View() string {
	var sb strings.Builder

	if l.err != "" {
		sb.WriteString(styles.ErrorBanner.Render(l.err))
		sb.WriteString("\n")
	}

	if l.submitting {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		sb.WriteString("\n")
	}

	sb.WriteString(l.form.View())

	hint := "ctrl+s Switch to sign up"
	if l.mode == ModeSignup {
		hint = "ctrl+s Switch to log in"
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(hint))

	return sb.String()
}
