package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studycopilot/studycopilot-cli/service"
	"github.com/studycopilot/studycopilot-cli/types"
)

var (
	notebookTitle string
	notebookDocs  []string
)

var notebookCmd = &cobra.Command{
	Use:     "notebook",
	Aliases: []string{"nb"},
	Short:   "Manage notebook workspaces",
}

var notebookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notebooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		nbs := service.NewNotebookService(a.api, a.log)
		list, err := nbs.List(context.Background())
		if err != nil {
			return err
		}
		printNotebooks(list)
		return nil
	},
}

var notebookCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		nbs := service.NewNotebookService(a.api, a.log)
		nb, err := nbs.Create(context.Background(), notebookTitle, notebookDocs)
		if err != nil {
			return err
		}
		fmt.Printf("Created notebook %s (%s) with %d documents.\n", nb.Title, nb.ID, len(nb.DocumentIDs))
		return nil
	},
}

var notebookShowCmd = &cobra.Command{
	Use:   "show <notebook-id>",
	Short: "Show a notebook, its documents and what can still be added",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		nbs := service.NewNotebookService(a.api, a.log)
		if err := nbs.Load(context.Background(), args[0]); err != nil {
			return err
		}

		nb := nbs.Notebook()
		fmt.Printf("%s (%s)\n", nb.Title, nb.ID)

		fmt.Println("\nAttached documents:")
		attached := nbs.Attached()
		if len(attached) == 0 {
			fmt.Println("  (none)")
		}
		for _, d := range attached {
			fmt.Printf("  %s  %s [%s]\n", d.ID, d.Title, d.Status)
		}

		available := nbs.AvailableToAdd()
		if len(available) > 0 {
			fmt.Println("\nAvailable to add:")
			for _, d := range available {
				fmt.Printf("  %s  %s\n", d.ID, d.Title)
			}
		}
		return nil
	},
}

var notebookAddCmd = &cobra.Command{
	Use:   "add <notebook-id>",
	Short: "Attach documents to a notebook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(notebookDocs) == 0 {
			return fmt.Errorf("pass at least one document id with --docs")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		nbs := service.NewNotebookService(a.api, a.log)
		if err := nbs.Load(context.Background(), args[0]); err != nil {
			return err
		}
		if err := nbs.AddDocuments(context.Background(), notebookDocs); err != nil {
			return err
		}
		fmt.Printf("Notebook now has %d documents.\n", len(nbs.Notebook().DocumentIDs))
		return nil
	},
}

var notebookDeleteCmd = &cobra.Command{
	Use:   "delete <notebook-id>",
	Short: "Delete a notebook workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("Delete this notebook workspace? Documents will remain in your library.") {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		nbs := service.NewNotebookService(a.api, a.log)
		remaining, err := nbs.Delete(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Deleted. %d notebooks remain.\n", len(remaining))
		return nil
	},
}

func printNotebooks(nbs []types.Notebook) {
	if len(nbs) == 0 {
		fmt.Println("No notebooks yet. Create one with 'studycopilot notebook create --title ...'.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDOCS\tUPDATED")
	for _, nb := range nbs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", nb.ID, nb.Title, len(nb.DocumentIDs), nb.UpdatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(notebookCmd)
	notebookCmd.AddCommand(notebookListCmd)
	notebookCmd.AddCommand(notebookCreateCmd)
	notebookCmd.AddCommand(notebookShowCmd)
	notebookCmd.AddCommand(notebookAddCmd)
	notebookCmd.AddCommand(notebookDeleteCmd)

	notebookCreateCmd.Flags().StringVarP(&notebookTitle, "title", "t", "", "notebook title (required)")
	notebookCreateCmd.Flags().StringSliceVarP(&notebookDocs, "docs", "d", nil, "document ids to attach")
	_ = notebookCreateCmd.MarkFlagRequired("title")

	notebookAddCmd.Flags().StringSliceVarP(&notebookDocs, "docs", "d", nil, "document ids to attach")
}
