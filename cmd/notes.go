package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studycopilot/studycopilot-cli/types"
)

var (
	notesDocs  []string
	notesTopic string
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Generate and browse study notes",
}

var notesGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate notes from documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(notesDocs) == 0 {
			return fmt.Errorf("pass at least one document id with --docs")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		note, err := a.api.GenerateNotes(context.Background(), types.NotesRequest{
			DocumentIDs: notesDocs,
			Topic:       notesTopic,
		})
		if err != nil {
			return err
		}
		if note.Title != "" {
			fmt.Printf("# %s\n\n", note.Title)
		}
		fmt.Println(note.Content)
		return nil
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		notes, err := a.api.ListNotes(context.Background())
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notes yet.")
			return nil
		}
		for _, n := range notes {
			title := n.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("%s  %s  %s\n", n.ID, n.CreatedAt.Format("2006-01-02"), title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesGenerateCmd)
	notesCmd.AddCommand(notesListCmd)

	notesGenerateCmd.Flags().StringSliceVarP(&notesDocs, "docs", "d", nil, "document ids to generate notes from")
	notesGenerateCmd.Flags().StringVarP(&notesTopic, "topic", "t", "", "optional topic to focus the notes on")
}
