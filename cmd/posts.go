// ABOUTME: Post commands for the taskflow CLI
// ABOUTME: List, create, update, publish, and delete posts

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/taskflow/cli/internal/client"
)

var (
	postStatus string
	postSearch string

	postTitle     string
	postContent   string
	postNewStatus string
	postTags      []string

	postUpTitle   string
	postUpContent string
	postUpStatus  string
	postUpTags    []string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage posts",
	Long:  `List, create, update, publish, and delete posts.`,
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		filters := client.PostFilters{Status: postStatus, Search: postSearch}
		exitCode := runPostList(ctx, os.Stdout, filters)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		create := client.PostCreate{Title: postTitle, Content: postContent, Status: postNewStatus, Tags: postTags}
		exitCode := runPostCreate(ctx, os.Stdout, create)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var postUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a post",
	Long:  `Change fields of a post. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid post id %q\n", args[0])
			os.Exit(2)
		}

		var update client.PostUpdate
		if cmd.Flags().Changed("title") {
			update.Title = &postUpTitle
		}
		if cmd.Flags().Changed("content") {
			update.Content = &postUpContent
		}
		if cmd.Flags().Changed("status") {
			update.Status = &postUpStatus
		}
		if cmd.Flags().Changed("tags") {
			update.Tags = &postUpTags
		}

		exitCode := runPostUpdate(ctx, os.Stdout, id, update)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var postPublishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Publish a post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid post id %q\n", args[0])
			os.Exit(2)
		}

		status := client.PostStatusPublished
		exitCode := runPostUpdate(ctx, os.Stdout, id, client.PostUpdate{Status: &status})
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid post id %q\n", args[0])
			os.Exit(2)
		}

		exitCode := runPostDelete(ctx, os.Stdout, id)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	postListCmd.Flags().StringVar(&postStatus, "status", "", "Filter by status (draft|published|archived)")
	postListCmd.Flags().StringVar(&postSearch, "search", "", "Search in title and content")

	postCreateCmd.Flags().StringVar(&postTitle, "title", "", "Post title")
	postCreateCmd.Flags().StringVar(&postContent, "content", "", "Post content")
	postCreateCmd.Flags().StringVar(&postNewStatus, "status", "", "Post status (draft|published|archived)")
	postCreateCmd.Flags().StringSliceVar(&postTags, "tags", nil, "Comma-separated tags")
	postCreateCmd.MarkFlagRequired("title")
	postCreateCmd.MarkFlagRequired("content")

	postUpdateCmd.Flags().StringVar(&postUpTitle, "title", "", "New title")
	postUpdateCmd.Flags().StringVar(&postUpContent, "content", "", "New content")
	postUpdateCmd.Flags().StringVar(&postUpStatus, "status", "", "New status (draft|published|archived)")
	postUpdateCmd.Flags().StringSliceVar(&postUpTags, "tags", nil, "New comma-separated tags")

	postCmd.AddCommand(postListCmd, postCreateCmd, postUpdateCmd, postPublishCmd, postDeleteCmd)
	rootCmd.AddCommand(postCmd)
}

// runPostList fetches and prints posts matching the filters.
func runPostList(ctx context.Context, w io.Writer, filters client.PostFilters) int {
	c, _ := newClient()

	posts, err := client.NewPostClient(c).List(ctx, filters)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(posts, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts found.")
		return 0
	}
	for _, p := range posts {
		fmt.Fprintln(w, formatPostLine(p))
	}
	return 0
}

// runPostCreate creates a post and prints the server's version of it.
func runPostCreate(ctx context.Context, w io.Writer, create client.PostCreate) int {
	c, _ := newClient()

	post, err := client.NewPostClient(c).Create(ctx, create)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(post, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Created post %d.\n%s\n", post.ID, formatPostLine(post))
	}
	return 0
}

// runPostUpdate applies a partial change to a post.
func runPostUpdate(ctx context.Context, w io.Writer, id int, update client.PostUpdate) int {
	c, _ := newClient()

	post, err := client.NewPostClient(c).Update(ctx, id, update)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(post, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatPostLine(post))
	}
	return 0
}

// runPostDelete removes a post.
func runPostDelete(ctx context.Context, w io.Writer, id int) int {
	c, _ := newClient()

	if err := client.NewPostClient(c).Delete(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Deleted post %d.\n", id)
	return 0
}

// formatPostLine renders one post for list output.
func formatPostLine(p client.Post) string {
	line := fmt.Sprintf("#%-4d [%-9s] %s", p.ID, p.Status, p.Title)
	if len(p.Tags) > 0 {
		line += " (" + strings.Join(p.Tags, ", ") + ")"
	}
	if p.ViewCount > 0 {
		line += fmt.Sprintf(" - %d views", p.ViewCount)
	}
	return line
}
