// ABOUTME: Dashboard command launching the interactive TUI
// ABOUTME: Also the default action when taskflow runs with no subcommand

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskflow/cli/internal/auth"
	"github.com/taskflow/cli/internal/config"
	"github.com/taskflow/cli/internal/debuglog"
	"github.com/taskflow/cli/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long:  `Open the full-screen terminal dashboard for tasks, notes, posts, and profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard wires the client, auth manager, and debug logger, then
// hands control to the TUI until it exits.
func runDashboard() error {
	if dir, err := config.Dir(); err == nil {
		debuglog.Init(dir)
		defer debuglog.Close()
	}

	c, store := newClient()
	mgr := auth.NewManager(c, store)

	debuglog.Log("dashboard starting, api=%s", c.BaseURL())
	return tui.Run(c, mgr)
}
