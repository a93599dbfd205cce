// ABOUTME: Login command for the taskflow CLI
// ABOUTME: Exchanges credentials for a bearer token and stores the session

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/taskflow/cli/internal/auth"
	"github.com/taskflow/cli/internal/client"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Long:  `Authenticate against the TaskFlow backend and store the session token for later commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, loginEmail, loginPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
}

// runLogin authenticates and reports the signed-in user.
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	c, store := newClient()
	mgr := auth.NewManager(c, store)

	user, err := mgr.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintf(w, "Logged in as %s <%s>\n", user.FullName, user.Email)
	}
	return 0
}

// formatUserJSON renders a user as indented JSON.
func formatUserJSON(user client.User) string {
	data, _ := json.MarshalIndent(user, "", "  ")
	return string(data)
}
