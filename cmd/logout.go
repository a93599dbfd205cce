// ABOUTME: Logout command for the taskflow CLI
// ABOUTME: Clears the stored session token

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskflow/cli/internal/auth"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Long:  `Remove the stored session token. Safe to run when not logged in.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session token.
func runLogout(w io.Writer) int {
	c, store := newClient()
	mgr := auth.NewManager(c, store)

	if err := mgr.Logout(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Logged out.")
	return 0
}
