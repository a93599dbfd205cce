// ABOUTME: Signup command for the taskflow CLI
// ABOUTME: Creates an account and immediately logs in with it

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

var (
	signupEmail    string
	signupPassword string
	signupName     string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	Long:  `Register a new TaskFlow account and store the session token.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSignup(ctx, os.Stdout, signupEmail, signupPassword, signupName)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Account password")
	signupCmd.Flags().StringVar(&signupName, "name", "", "Full name")
	signupCmd.MarkFlagRequired("email")
	signupCmd.MarkFlagRequired("password")
	signupCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(signupCmd)
}

// runSignup registers the account and reports the signed-in user.
func runSignup(ctx context.Context, w io.Writer, email, password, fullName string) int {
	c, store := newClient()
	mgr := auth.NewManager(c, store)

	user, err := mgr.Signup(ctx, email, password, fullName)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintf(w, "Account created. Logged in as %s <%s>\n", user.FullName, user.Email)
	}
	return 0
}
