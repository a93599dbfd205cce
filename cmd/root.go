// ABOUTME: Root command for the taskflow CLI
// ABOUTME: Handles global flags, config loading, and client construction

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/taskflow/cli/internal/client"
	"github.com/taskflow/cli/internal/config"
	"github.com/taskflow/cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command. Running it with no subcommand opens the
// terminal dashboard.
var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "Terminal client for TaskFlow",
	Long: `taskflow is a terminal client for the TaskFlow API.

Run it without arguments to open the interactive dashboard, or use the
subcommands for scripting: tasks, notes, posts, profile, and health.

Environment Variables:
  TASKFLOW_API_URL  Backend API URL (default: http://localhost:8000)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		config.LoadDotenv()
	})
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides TASKFLOW_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	return config.APIURL(apiURL)
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds the API client over the session store. A token from
// TASKFLOW_TOKEN takes priority and is never persisted; otherwise the
// file-backed store under the config directory is used. When the config
// directory is unavailable the session is memory-only for the process.
func newClient() (*client.Client, *session.Store) {
	var storage session.Storage
	if token := os.Getenv(config.EnvToken); token != "" {
		mem := &session.MemoryStorage{}
		mem.Set(token)
		storage = mem
	} else if dir, err := config.Dir(); err == nil {
		storage = session.NewFileStorage(dir)
	} else {
		storage = &session.MemoryStorage{}
	}
	store := session.NewStore(storage)
	return client.New(GetAPIURL(), store), store
}
