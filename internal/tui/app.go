// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, auth flow, and routes input to child screens

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/taskflow/cli/internal/auth"
	"github.com/taskflow/cli/internal/client"
	"github.com/taskflow/cli/internal/tui/dashboard"
	"github.com/taskflow/cli/internal/tui/icons"
	"github.com/taskflow/cli/internal/tui/login"
	"github.com/taskflow/cli/internal/tui/notes"
	"github.com/taskflow/cli/internal/tui/posts"
	"github.com/taskflow/cli/internal/tui/profile"
	"github.com/taskflow/cli/internal/tui/styles"
	"github.com/taskflow/cli/internal/tui/tasks"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenDashboard
	ScreenTasks
	ScreenNotes
	ScreenPosts
	ScreenProfile
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before layout degrades
	panelPadding     = 4  // Total horizontal padding from panel borders
)

// sessionExpiredMsg is sent by the pipeline's 401 hook. Ignored while an
// unauthenticated screen is already showing.
type sessionExpiredMsg struct{}

// hydratedMsg is sent when startup session hydration settles.
type hydratedMsg struct {
	state auth.State
}

// authResultMsg is sent when a login or signup attempt settles.
type authResultMsg struct {
	user client.User
	err  error
}

// dashboardLoadedMsg is sent when the overview data is loaded.
type dashboardLoadedMsg struct {
	data *dashboard.Data
	err  error
}

// App is the root model for the TUI
type App struct {
	client *client.Client
	auth   *auth.Manager

	screen     Screen
	width      int
	height     int
	err        error
	user       *client.User
	lastUpdate time.Time
	spin       spinner.Model

	// Child models
	loginScreen   *login.Login
	dash          *dashboard.Dashboard
	tasksScreen   *tasks.Model
	notesScreen   *notes.Model
	postsScreen   *posts.Model
	profileScreen *profile.Model
}

// New creates a new TUI application
func New(apiClient *client.Client, mgr *auth.Manager) *App {
	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
	return &App{
		client: apiClient,
		auth:   mgr,
		screen: ScreenLoading,
		spin:   spin,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	hydrate := func() tea.Msg {
		return hydratedMsg{state: a.auth.Hydrate(context.Background())}
	}
	return tea.Batch(hydrate, a.spin.Tick)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dash != nil {
			a.dash.SetSize(a.contentWidth(), a.contentHeight())
		}
		// Forward to every child so inputs and forms can resize
		return a, a.broadcast(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case hydratedMsg:
		if msg.state == auth.StateAuthenticated {
			_, user := a.auth.State()
			return a, a.enterAuthenticated(*user)
		}
		a.loginScreen = login.New()
		a.screen = ScreenLogin
		cmds := []tea.Cmd{a.loginScreen.Init()}
		if lastErr := a.auth.LastError(); lastErr != "" {
			cmds = append(cmds, a.loginScreen.SetError(lastErr))
		}
		return a, tea.Batch(cmds...)

	case login.SubmitMsg:
		return a, a.authenticate(msg)

	case login.CancelledMsg:
		return a, tea.Quit

	case authResultMsg:
		if msg.err != nil {
			if a.loginScreen != nil {
				return a, a.loginScreen.SetError(msg.err.Error())
			}
			return a, nil
		}
		return a, a.enterAuthenticated(msg.user)

	case dashboardLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.lastUpdate = time.Now()
		if a.dash == nil {
			a.dash = dashboard.New(msg.data, a.contentWidth(), a.contentHeight())
		} else {
			a.dash.Update(msg.data)
		}
		return a, nil

	case profile.UpdatedMsg:
		user := msg.User
		a.user = &user
		return a, a.route(msg)

	case spinner.TickMsg:
		// Only tick while a loading placeholder is visible.
		if a.screen == ScreenLoading || (a.screen == ScreenDashboard && a.dash == nil && a.err == nil) {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil

	case sessionExpiredMsg:
		// Already on an unauthenticated screen; nothing to redirect.
		if a.screen == ScreenLoading || a.screen == ScreenLogin {
			return a, nil
		}
		return a, a.resetToLogin("Session expired. Please log in again.")
	}

	// Everything else (debounce ticks, fetch results, form internals)
	// goes to the children so background work settles regardless of the
	// screen currently showing.
	return a, a.broadcast(msg)
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.screen == ScreenLoading {
		return a, nil
	}
	if a.screen == ScreenLogin {
		if msg.String() == "ctrl+s" && a.loginScreen != nil {
			return a, a.loginScreen.ToggleMode()
		}
		return a, a.route(msg)
	}

	// Authenticated screens. Logout works even while typing.
	if msg.String() == "ctrl+l" {
		a.auth.Logout()
		return a, a.resetToLogin("")
	}

	if !a.capturing() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "1":
			a.screen = ScreenDashboard
			return a, a.loadDashboard()
		case "2":
			a.screen = ScreenTasks
			return a, nil
		case "3":
			a.screen = ScreenNotes
			return a, nil
		case "4":
			a.screen = ScreenPosts
			return a, nil
		case "5":
			a.screen = ScreenProfile
			return a, nil
		}
		if a.screen == ScreenDashboard && msg.String() == "r" {
			return a, a.loadDashboard()
		}
	}

	return a, a.route(msg)
}

// capturing reports whether the active screen is consuming raw keystrokes.
func (a *App) capturing() bool {
	switch a.screen {
	case ScreenTasks:
		return a.tasksScreen != nil && a.tasksScreen.Capturing()
	case ScreenNotes:
		return a.notesScreen != nil && a.notesScreen.Capturing()
	case ScreenPosts:
		return a.postsScreen != nil && a.postsScreen.Capturing()
	case ScreenProfile:
		return a.profileScreen != nil && a.profileScreen.Capturing()
	}
	return false
}

// route delivers a message to the active screen only.
func (a *App) route(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		if a.loginScreen != nil {
			model, cmd := a.loginScreen.Update(msg)
			a.loginScreen = model.(*login.Login)
			return cmd
		}
	case ScreenTasks:
		if a.tasksScreen != nil {
			model, cmd := a.tasksScreen.Update(msg)
			a.tasksScreen = model.(*tasks.Model)
			return cmd
		}
	case ScreenNotes:
		if a.notesScreen != nil {
			model, cmd := a.notesScreen.Update(msg)
			a.notesScreen = model.(*notes.Model)
			return cmd
		}
	case ScreenPosts:
		if a.postsScreen != nil {
			model, cmd := a.postsScreen.Update(msg)
			a.postsScreen = model.(*posts.Model)
			return cmd
		}
	case ScreenProfile:
		if a.profileScreen != nil {
			model, cmd := a.profileScreen.Update(msg)
			a.profileScreen = model.(*profile.Model)
			return cmd
		}
	}
	return nil
}

// broadcast delivers a message to every live child screen. Fetch results
// and debounce ticks are typed per resource, so cross-delivery is inert.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if a.loginScreen != nil && a.screen == ScreenLogin {
		model, cmd := a.loginScreen.Update(msg)
		a.loginScreen = model.(*login.Login)
		cmds = append(cmds, cmd)
	}
	if a.tasksScreen != nil {
		model, cmd := a.tasksScreen.Update(msg)
		a.tasksScreen = model.(*tasks.Model)
		cmds = append(cmds, cmd)
	}
	if a.notesScreen != nil {
		model, cmd := a.notesScreen.Update(msg)
		a.notesScreen = model.(*notes.Model)
		cmds = append(cmds, cmd)
	}
	if a.postsScreen != nil {
		model, cmd := a.postsScreen.Update(msg)
		a.postsScreen = model.(*posts.Model)
		cmds = append(cmds, cmd)
	}
	if a.profileScreen != nil {
		model, cmd := a.profileScreen.Update(msg)
		a.profileScreen = model.(*profile.Model)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// authenticate runs a login or signup attempt off the UI goroutine.
func (a *App) authenticate(msg login.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		var user client.User
		var err error
		if msg.Mode == login.ModeSignup {
			user, err = a.auth.Signup(context.Background(), msg.Email, msg.Password, msg.FullName)
		} else {
			user, err = a.auth.Login(context.Background(), msg.Email, msg.Password)
		}
		return authResultMsg{user: user, err: err}
	}
}

// enterAuthenticated builds the signed-in screens and loads the overview.
func (a *App) enterAuthenticated(user client.User) tea.Cmd {
	a.user = &user
	a.loginScreen = nil
	a.tasksScreen = tasks.New(client.NewTaskClient(a.client))
	a.notesScreen = notes.New(client.NewNoteClient(a.client))
	a.postsScreen = posts.New(client.NewPostClient(a.client))
	a.profileScreen = profile.New(a.client, user)
	a.screen = ScreenDashboard

	return tea.Batch(
		a.loadDashboard(),
		a.tasksScreen.Init(),
		a.notesScreen.Init(),
		a.postsScreen.Init(),
		a.spin.Tick,
	)
}

// resetToLogin tears down the signed-in screens and shows the login form.
func (a *App) resetToLogin(errMsg string) tea.Cmd {
	a.user = nil
	a.dash = nil
	a.tasksScreen = nil
	a.notesScreen = nil
	a.postsScreen = nil
	a.profileScreen = nil
	a.err = nil
	a.loginScreen = login.New()
	a.screen = ScreenLogin

	cmds := []tea.Cmd{a.loginScreen.Init()}
	if errMsg != "" {
		cmds = append(cmds, a.loginScreen.SetError(errMsg))
	}
	return tea.Batch(cmds...)
}

// loadDashboard fetches everything the overview renders.
func (a *App) loadDashboard() tea.Cmd {
	user := a.user
	c := a.client
	return func() tea.Msg {
		ctx := context.Background()
		data := &dashboard.Data{User: user}

		taskList, err := client.NewTaskClient(c).List(ctx, client.TaskFilters{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		data.Tasks = taskList

		noteList, err := client.NewNoteClient(c).List(ctx, client.NoteFilters{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		data.Notes = noteList

		postList, err := client.NewPostClient(c).List(ctx, client.PostFilters{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		data.Posts = postList

		health, err := c.Health(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		data.Health = health

		return dashboardLoadedMsg{data: data}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLoading:
		content = a.spin.View() + styles.Subtitle.Render(" Checking session...")
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenDashboard:
		content = a.viewDashboard()
	case ScreenTasks:
		if a.tasksScreen != nil {
			content = a.tasksScreen.View()
		}
	case ScreenNotes:
		if a.notesScreen != nil {
			content = a.notesScreen.View()
		}
	case ScreenPosts:
		if a.postsScreen != nil {
			content = a.postsScreen.View()
		}
	case ScreenProfile:
		if a.profileScreen != nil {
			content = a.profileScreen.View()
		}
	default:
		content = ""
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewLogin() string {
	if a.loginScreen != nil {
		return a.loginScreen.View()
	}
	return ""
}

func (a *App) viewDashboard() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}
	if a.dash != nil {
		return styles.ActivePanel.Width(a.contentWidth()).Render(a.dash.View())
	}
	return styles.Panel.Width(a.contentWidth()).Render(a.spin.View() + " Loading...")
}

// contentWidth calculates the width for the main content pane
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - panelPadding
	}
	return a.width - panelPadding
}

// contentHeight calculates the height available for content
func (a *App) contentHeight() int {
	// Header, footer, panel borders, and separating newlines
	return a.height - 8
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	icon := icons.App.String()
	leftText := fmt.Sprintf(" %s %s", icon, titleStyle.Render("TaskFlow"))

	rightText := ""
	if a.user != nil {
		rightText = contextStyle.Render(a.user.Email) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for the corners
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)
	header := "╭─" + leftRendered + fill + rightRendered + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenDashboard {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)
	footer := "╰─" + leftText + fill + rightText + "─╯"

	return borderStyle.Render(footer)
}

// shortcuts builds the footer key hints for the current screen.
func (a *App) shortcuts() []string {
	nav := []string{"1 Dashboard", "2 Tasks", "3 Notes", "4 Posts", "5 Profile"}

	switch a.screen {
	case ScreenLoading:
		return []string{"ctrl+c Quit"}
	case ScreenLogin:
		return []string{"Enter Submit", "ctrl+s Switch mode", "Esc Quit"}
	case ScreenDashboard:
		return append(nav, "r Refresh", "ctrl+l Logout", "q Quit")
	case ScreenTasks:
		if a.tasksScreen != nil {
			return append(a.tasksScreen.Shortcuts(), "ctrl+l Logout")
		}
	case ScreenNotes:
		if a.notesScreen != nil {
			return append(a.notesScreen.Shortcuts(), "ctrl+l Logout")
		}
	case ScreenPosts:
		if a.postsScreen != nil {
			return append(a.postsScreen.Shortcuts(), "ctrl+l Logout")
		}
	case ScreenProfile:
		if a.profileScreen != nil {
			return append(a.profileScreen.Shortcuts(), "ctrl+l Logout")
		}
	}
	return append(nav, "q Quit")
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI. The pipeline's session-expired hook is wired to a
// program message so a 401 on any background fetch lands on the login
// screen.
func Run(apiClient *client.Client, mgr *auth.Manager) error {
	app := New(apiClient, mgr)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	apiClient.OnSessionExpired(func() {
		p.Send(sessionExpiredMsg{})
	})

	_, err := p.Run()
	return err
}
