// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps task, note, and post attributes onto colored inline badges

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/taskflow/cli/internal/client"
	"github.com/taskflow/cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
	BadgeStarFg    = lipgloss.Color("#FBBF24")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// TaskStatusBadge renders a task's lifecycle status
func TaskStatusBadge(status string) string {
	switch status {
	case client.TaskStatusCompleted:
		return Badge("DONE", StatusOK)
	case client.TaskStatusInProgress:
		return Badge("ACTIVE", StatusInfo)
	case client.TaskStatusPending:
		return Badge("PENDING", StatusNeutral)
	default:
		return Badge(status, StatusNeutral)
	}
}

// PriorityBadge renders a task priority
func PriorityBadge(priority string) string {
	switch priority {
	case client.TaskPriorityHigh:
		return Badge("HIGH", StatusCritical)
	case client.TaskPriorityMedium:
		return Badge("MED", StatusWarning)
	case client.TaskPriorityLow:
		return Badge("LOW", StatusNeutral)
	default:
		return Badge(priority, StatusNeutral)
	}
}

// PostStatusBadge renders a post's publication status
func PostStatusBadge(status string) string {
	switch status {
	case client.PostStatusPublished:
		return Badge("LIVE", StatusOK)
	case client.PostStatusDraft:
		return Badge("DRAFT", StatusNeutral)
	case client.PostStatusArchived:
		return Badge("ARCHIVED", StatusWarning)
	default:
		return Badge(status, StatusNeutral)
	}
}

// FavoriteMarker renders the star shown next to favorite notes
func FavoriteMarker(isFavorite bool) string {
	if !isFavorite {
		return " "
	}
	return lipgloss.NewStyle().Foreground(BadgeStarFg).Render(icons.Star.String())
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	switch level {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(BadgeOKBg).Render(icons.CheckOK.String())
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(icons.Warning.String())
	case StatusCritical:
		return lipgloss.NewStyle().Foreground(BadgeCritBg).Render(icons.Critical.String())
	case StatusInfo:
		return lipgloss.NewStyle().Foreground(BadgeInfoBg).Render(icons.Info.String())
	default:
		return lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	icon := StatusIcon(level)

	var color lipgloss.Color
	switch level {
	case StatusOK:
		color = BadgeOKBg
	case StatusWarning:
		color = BadgeWarnBg
	case StatusCritical:
		color = BadgeCritBg
	case StatusInfo:
		color = BadgeInfoBg
	default:
		color = BadgeNeutralBg
	}

	textStyle := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s", icon, textStyle.Render(text))
}

// HealthBadge renders the backend health state
func HealthBadge(status string) string {
	if status == "healthy" {
		return Badge("HEALTHY", StatusOK)
	}
	return Badge("UNHEALTHY", StatusCritical)
}
