// ABOUTME: Dashboard component summarizing the signed-in user's content
// ABOUTME: Shows task progress, note and post counts, and backend health

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/taskflow/cli/internal/client"
	"github.com/taskflow/cli/internal/tui/icons"
	"github.com/taskflow/cli/internal/tui/styles"
	"github.com/taskflow/cli/internal/tui/widgets"
)

// Data holds everything the dashboard renders.
type Data struct {
	User   *client.User
	Tasks  []client.Task
	Notes  []client.Note
	Posts  []client.Post
	Health client.HealthResponse
}

// Dashboard displays the signed-in overview.
type Dashboard struct {
	data   *Data
	width  int
	height int
}

// New creates a dashboard. Data may be nil until the first load completes.
func New(data *Data, width, height int) *Dashboard {
	return &Dashboard{
		data:   data,
		width:  width,
		height: height,
	}
}

// Update replaces the dashboard data after a refresh.
func (d *Dashboard) Update(data *Data) {
	d.data = data
}

// SetSize updates the dashboard dimensions.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard.
func (d *Dashboard) View() string {
	if d.data == nil {
		return styles.Panel.Width(d.width).Render("Loading your dashboard...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Dashboard"))
	sb.WriteString("\n")
	if d.data.User != nil {
		sb.WriteString(styles.Subtitle.Render("Welcome back, " + d.data.User.FullName))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	// Task progress
	total := len(d.data.Tasks)
	completed := 0
	inProgress := 0
	for _, t := range d.data.Tasks {
		switch t.Status {
		case client.TaskStatusCompleted:
			completed++
		case client.TaskStatusInProgress:
			inProgress++
		}
	}
	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}

	sb.WriteString(fmt.Sprintf("%s Tasks: %d\n", icons.Task.String(), total))
	sb.WriteString(styles.ProgressBar(percent, 20))
	sb.WriteString(fmt.Sprintf(" %.0f%% done\n", percent))
	sb.WriteString(fmt.Sprintf("  %d completed, %d in progress, %d pending\n",
		completed, inProgress, total-completed-inProgress))
	sb.WriteString("\n")

	// Notes
	favorites := 0
	for _, n := range d.data.Notes {
		if n.IsFavorite {
			favorites++
		}
	}
	sb.WriteString(fmt.Sprintf("%s Notes: %d", icons.Note.String(), len(d.data.Notes)))
	if favorites > 0 {
		sb.WriteString(fmt.Sprintf("  %s %d favorite(s)", widgets.FavoriteMarker(true), favorites))
	}
	sb.WriteString("\n\n")

	// Posts
	published := 0
	drafts := 0
	for _, p := range d.data.Posts {
		switch p.Status {
		case client.PostStatusPublished:
			published++
		case client.PostStatusDraft:
			drafts++
		}
	}
	sb.WriteString(fmt.Sprintf("%s Posts: %d\n", icons.Post.String(), len(d.data.Posts)))
	sb.WriteString(fmt.Sprintf("  %d published, %d draft(s)\n", published, drafts))
	sb.WriteString("\n")

	// Backend health
	sb.WriteString(fmt.Sprintf("%s Backend: %s", icons.Health.String(), widgets.HealthBadge(d.data.Health.Status)))
	if d.data.Health.Error != "" {
		sb.WriteString("\n  " + styles.StatusCritical.Render(d.data.Health.Error))
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Height(d.height).
		Render(sb.String())
}
