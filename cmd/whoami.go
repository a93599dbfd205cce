// ABOUTME: Whoami command for the taskflow CLI
// ABOUTME: Shows the user behind the stored session token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/taskflow/cli/internal/auth"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Long:  `Validate the stored session and show the account it belongs to.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami hydrates the session and reports the user.
func runWhoami(ctx context.Context, w io.Writer) int {
	c, store := newClient()
	mgr := auth.NewManager(c, store)

	if mgr.Hydrate(ctx) != auth.StateAuthenticated {
		if msg := mgr.LastError(); msg != "" {
			fmt.Fprintf(w, "Not logged in: %s\n", msg)
		} else {
			fmt.Fprintln(w, "Not logged in.")
		}
		return 2
	}

	_, user := mgr.State()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(*user))
	} else {
		fmt.Fprintf(w, "%s <%s>\n", user.FullName, user.Email)
	}
	return 0
}
