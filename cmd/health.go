// ABOUTME: Health command for the taskflow CLI
// ABOUTME: Checks backend and database reachability

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
	"github.com/taskflow/cli/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the TaskFlow backend and verify database status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code. An
// unreachable or unhealthy backend exits 2 so pipelines can alert.
func runHealth(ctx context.Context, w io.Writer) int {
	c, _ := newClient()

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(c.BaseURL(), resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(c.BaseURL(), resp))
	}

	if resp.Status != "healthy" {
		return 2
	}
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp client.HealthResponse) string {
	out := fmt.Sprintf("Backend:  %s\nStatus:   %s", url, resp.Status)
	if resp.Database != "" {
		out += fmt.Sprintf("\nDatabase: %s", resp.Database)
	}
	if resp.Error != "" {
		out += fmt.Sprintf("\nError:    %s", resp.Error)
	}
	return out
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp client.HealthResponse) string {
	output := map[string]interface{}{
		"backend": url,
		"status":  resp.Status,
	}
	if resp.Database != "" {
		output["database"] = resp.Database
	}
	if resp.Error != "" {
		output["error"] = resp.Error
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
