// ABOUTME: Task commands for the taskflow CLI
// ABOUTME: List, create, update, complete, and delete tasks

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/taskflow/cli/internal/client"
)

var (
	taskStatus   string
	taskPriority string
	taskSearch   string

	taskTitle       string
	taskDescription string
	taskNewPriority string

	taskUpTitle       string
	taskUpDescription string
	taskUpStatus      string
	taskUpPriority    string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `List, create, update, complete, and delete tasks.`,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		filters := client.TaskFilters{Status: taskStatus, Priority: taskPriority, Search: taskSearch}
		exitCode := runTaskList(ctx, os.Stdout, filters)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		create := client.TaskCreate{Title: taskTitle, Description: taskDescription, Priority: taskNewPriority}
		exitCode := runTaskCreate(ctx, os.Stdout, create)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Long:  `Change fields of a task. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid task id %q\n", args[0])
			os.Exit(2)
		}

		var update client.TaskUpdate
		if cmd.Flags().Changed("title") {
			update.Title = &taskUpTitle
		}
		if cmd.Flags().Changed("description") {
			update.Description = &taskUpDescription
		}
		if cmd.Flags().Changed("status") {
			update.Status = &taskUpStatus
		}
		if cmd.Flags().Changed("priority") {
			update.Priority = &taskUpPriority
		}

		exitCode := runTaskUpdate(ctx, os.Stdout, id, update)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid task id %q\n", args[0])
			os.Exit(2)
		}

		status := client.TaskStatusCompleted
		exitCode := runTaskUpdate(ctx, os.Stdout, id, client.TaskUpdate{Status: &status})
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid task id %q\n", args[0])
			os.Exit(2)
		}

		exitCode := runTaskDelete(ctx, os.Stdout, id)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	taskListCmd.Flags().StringVar(&taskStatus, "status", "", "Filter by status (pending|in_progress|completed)")
	taskListCmd.Flags().StringVar(&taskPriority, "priority", "", "Filter by priority (low|medium|high)")
	taskListCmd.Flags().StringVar(&taskSearch, "search", "", "Search in title and description")

	taskCreateCmd.Flags().StringVar(&taskTitle, "title", "", "Task title")
	taskCreateCmd.Flags().StringVar(&taskDescription, "description", "", "Task description")
	taskCreateCmd.Flags().StringVar(&taskNewPriority, "priority", "", "Task priority (low|medium|high)")
	taskCreateCmd.MarkFlagRequired("title")

	taskUpdateCmd.Flags().StringVar(&taskUpTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVar(&taskUpDescription, "description", "", "New description")
	taskUpdateCmd.Flags().StringVar(&taskUpStatus, "status", "", "New status (pending|in_progress|completed)")
	taskUpdateCmd.Flags().StringVar(&taskUpPriority, "priority", "", "New priority (low|medium|high)")

	taskCmd.AddCommand(taskListCmd, taskCreateCmd, taskUpdateCmd, taskCompleteCmd, taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

// runTaskList fetches and prints tasks matching the filters.
func runTaskList(ctx context.Context, w io.Writer, filters client.TaskFilters) int {
	c, _ := newClient()

	tasks, err := client.NewTaskClient(c).List(ctx, filters)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(tasks, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return 0
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
	return 0
}

// runTaskCreate creates a task and prints the server's version of it.
func runTaskCreate(ctx context.Context, w io.Writer, create client.TaskCreate) int {
	c, _ := newClient()

	task, err := client.NewTaskClient(c).Create(ctx, create)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(task, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Created task %d.\n%s\n", task.ID, formatTaskLine(task))
	}
	return 0
}

// runTaskUpdate applies a partial change to a task.
func runTaskUpdate(ctx context.Context, w io.Writer, id int, update client.TaskUpdate) int {
	c, _ := newClient()

	task, err := client.NewTaskClient(c).Update(ctx, id, update)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(task, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatTaskLine(task))
	}
	return 0
}

// runTaskDelete removes a task.
func runTaskDelete(ctx context.Context, w io.Writer, id int) int {
	c, _ := newClient()

	if err := client.NewTaskClient(c).Delete(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Deleted task %d.\n", id)
	return 0
}

// formatTaskLine renders one task for list output.
func formatTaskLine(t client.Task) string {
	return fmt.Sprintf("#%-4d [%-11s] [%-6s] %s", t.ID, t.Status, t.Priority, t.Title)
}
