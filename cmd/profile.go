// ABOUTME: Profile commands for the taskflow CLI
// ABOUTME: Shows and updates the signed-in account

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/taskflow/cli/internal/client"
)

var (
	profileEmail string
	profileName  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the account profile",
	Long:  `Display the signed-in account's profile.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfileShow(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the account profile",
	Long:  `Change the email and/or full name of the signed-in account. Only the flags you pass are changed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		var update client.ProfileUpdate
		if cmd.Flags().Changed("email") {
			update.Email = &profileEmail
		}
		if cmd.Flags().Changed("name") {
			update.FullName = &profileName
		}

		exitCode := runProfileUpdate(ctx, os.Stdout, update)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "New email")
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "New full name")
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfileShow fetches and prints the current profile.
func runProfileShow(ctx context.Context, w io.Writer) int {
	c, _ := newClient()

	user, err := c.CurrentUser(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprint(w, formatUserHuman(user))
	}
	return 0
}

// runProfileUpdate applies a partial profile change.
func runProfileUpdate(ctx context.Context, w io.Writer, update client.ProfileUpdate) int {
	if update.Email == nil && update.FullName == nil {
		fmt.Fprintln(w, "Nothing to update. Pass --email and/or --name.")
		return 2
	}

	c, _ := newClient()

	user, err := c.UpdateProfile(ctx, update)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintf(w, "Profile updated.\n%s", formatUserHuman(user))
	}
	return 0
}

// formatUserHuman renders a user profile for human readability.
func formatUserHuman(user client.User) string {
	return fmt.Sprintf(`Name:    %s
Email:   %s
Member:  %s
`, user.FullName, user.Email, user.CreatedAt)
}
