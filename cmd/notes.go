// ABOUTME: Note commands for the taskflow CLI
// ABOUTME: List, create, update, favorite, and delete notes

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
	noteCategory string
	noteFavorite bool
	noteSearch   string

	noteTitle       string
	noteContent     string
	noteNewCategory string

	noteUpTitle    string
	noteUpContent  string
	noteUpCategory string
	noteUpFavorite bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long:  `List, create, update, favorite, and delete notes.`,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		filters := client.NoteFilters{Category: noteCategory, Search: noteSearch}
		if cmd.Flags().Changed("favorite") {
			filters.Favorite = &noteFavorite
		}

		exitCode := runNoteList(ctx, os.Stdout, filters)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var noteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		create := client.NoteCreate{Title: noteTitle, Content: noteContent, Category: noteNewCategory}
		exitCode := runNoteCreate(ctx, os.Stdout, create)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a note",
	Long:  `Change fields of a note. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid note id %q\n", args[0])
			os.Exit(2)
		}

		var update client.NoteUpdate
		if cmd.Flags().Changed("title") {
			update.Title = &noteUpTitle
		}
		if cmd.Flags().Changed("content") {
			update.Content = &noteUpContent
		}
		if cmd.Flags().Changed("category") {
			update.Category = &noteUpCategory
		}
		if cmd.Flags().Changed("favorite") {
			update.IsFavorite = &noteUpFavorite
		}

		exitCode := runNoteUpdate(ctx, os.Stdout, id, update)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var noteFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a note's favorite flag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid note id %q\n", args[0])
			os.Exit(2)
		}

		exitCode := runNoteFavorite(ctx, os.Stdout, id)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid note id %q\n", args[0])
			os.Exit(2)
		}

		exitCode := runNoteDelete(ctx, os.Stdout, id)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	noteListCmd.Flags().StringVar(&noteCategory, "category", "", "Filter by category")
	noteListCmd.Flags().BoolVar(&noteFavorite, "favorite", false, "Filter by favorite flag")
	noteListCmd.Flags().StringVar(&noteSearch, "search", "", "Search in title and content")

	noteCreateCmd.Flags().StringVar(&noteTitle, "title", "", "Note title")
	noteCreateCmd.Flags().StringVar(&noteContent, "content", "", "Note content")
	noteCreateCmd.Flags().StringVar(&noteNewCategory, "category", "", "Note category")
	noteCreateCmd.MarkFlagRequired("title")

	noteUpdateCmd.Flags().StringVar(&noteUpTitle, "title", "", "New title")
	noteUpdateCmd.Flags().StringVar(&noteUpContent, "content", "", "New content")
	noteUpdateCmd.Flags().StringVar(&noteUpCategory, "category", "", "New category")
	noteUpdateCmd.Flags().BoolVar(&noteUpFavorite, "favorite", false, "New favorite flag")

	noteCmd.AddCommand(noteListCmd, noteCreateCmd, noteUpdateCmd, noteFavoriteCmd, noteDeleteCmd)
	rootCmd.AddCommand(noteCmd)
}

// runNoteList fetches and prints notes matching the filters.
func runNoteList(ctx context.Context, w io.Writer, filters client.NoteFilters) int {
	c, _ := newClient()

	notes, err := client.NewNoteClient(c).List(ctx, filters)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(notes, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return 0
	}
	for _, n := range notes {
		fmt.Fprintln(w, formatNoteLine(n))
	}
	return 0
}

// runNoteCreate creates a note and prints the server's version of it.
func runNoteCreate(ctx context.Context, w io.Writer, create client.NoteCreate) int {
	c, _ := newClient()

	note, err := client.NewNoteClient(c).Create(ctx, create)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(note, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Created note %d.\n%s\n", note.ID, formatNoteLine(note))
	}
	return 0
}

// runNoteUpdate applies a partial change to a note.
func runNoteUpdate(ctx context.Context, w io.Writer, id int, update client.NoteUpdate) int {
	c, _ := newClient()

	note, err := client.NewNoteClient(c).Update(ctx, id, update)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(note, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatNoteLine(note))
	}
	return 0
}

// runNoteFavorite reads the note and flips its favorite flag.
func runNoteFavorite(ctx context.Context, w io.Writer, id int) int {
	c, _ := newClient()
	res := client.NewNoteClient(c)

	note, err := res.Get(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	next := !note.IsFavorite
	note, err = res.Update(ctx, id, client.NoteUpdate{IsFavorite: &next})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(note, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatNoteLine(note))
	}
	return 0
}

// runNoteDelete removes a note.
func runNoteDelete(ctx context.Context, w io.Writer, id int) int {
	c, _ := newClient()

	if err := client.NewNoteClient(c).Delete(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Deleted note %d.\n", id)
	return 0
}

// formatNoteLine renders one note for list output.
func formatNoteLine(n client.Note) string {
	star := " "
	if n.IsFavorite {
		star = "*"
	}
	category := n.Category
	if category == "" {
		category = "general"
	}
	return fmt.Sprintf("#%-4d %s [%s] %s", n.ID, star, category, n.Title)
}
