package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studycopilot/studycopilot-cli/service"
	"github.com/studycopilot/studycopilot-cli/types"
	"github.com/studycopilot/studycopilot-cli/utils"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage your document library",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		library := service.NewLibraryService(a.api, a.log)
		docs, err := library.Documents(context.Background())
		if err != nil {
			return err
		}
		printDocuments(docs)
		return nil
	},
}

var docsGetCmd = &cobra.Command{
	Use:   "get <document-id>",
	Short: "Show one document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		library := service.NewLibraryService(a.api, a.log)
		doc, err := library.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		printDocuments([]types.Document{*doc})
		if doc.Summary != "" {
			fmt.Println("\nSummary:")
			fmt.Println(doc.Summary)
		}
		return nil
	},
}

var docsUploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a PDF to your library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		library := service.NewLibraryService(a.api, a.log)
		doc, err := library.Upload(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s (%s). Processing has started; run 'studycopilot docs get %s' to check status.\n",
			doc.Title, doc.ID, doc.ID)
		return nil
	},
}

var docsBatchUploadCmd = &cobra.Command{
	Use:   "batch-upload <directory>",
	Short: "Upload every PDF in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		paths, err := filepath.Glob(filepath.Join(args[0], "*.pdf"))
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no PDF files found in %s", args[0])
		}

		library := service.NewLibraryService(a.api, a.log)
		failed := 0
		for _, path := range paths {
			doc, err := library.Upload(context.Background(), path)
			if err != nil {
				failed++
				color.Red("failed: %s: %v", filepath.Base(path), err)
				a.log.Warn("batch upload item failed", zap.String("path", path), zap.Error(err))
				continue
			}
			fmt.Printf("uploaded: %s (%s)\n", doc.Title, doc.ID)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d uploads failed", failed, len(paths))
		}
		fmt.Printf("Uploaded %d documents.\n", len(paths))
		return nil
	},
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Delete a document from your library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("Delete this document? It will be removed from all notebooks.") {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		library := service.NewLibraryService(a.api, a.log)
		docs, err := library.Delete(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Deleted. %d documents remain.\n", len(docs))
		return nil
	},
}

func printDocuments(docs []types.Document) {
	if len(docs) == 0 {
		fmt.Println("No documents uploaded yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSIZE\tPAGES\tSTATUS\tUPLOADED")
	for _, d := range docs {
		pages := "-"
		if d.PageCount != nil {
			pages = fmt.Sprintf("%d", *d.PageCount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Title, utils.HumanSize(d.FileSize), pages, coloredStatus(d.Status),
			d.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func coloredStatus(status string) string {
	switch status {
	case types.DocumentStatusReady:
		return color.GreenString(status)
	case types.DocumentStatusFailed:
		return color.RedString(status)
	default:
		return color.YellowString(status)
	}
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsGetCmd)
	docsCmd.AddCommand(docsUploadCmd)
	docsCmd.AddCommand(docsBatchUploadCmd)
	docsCmd.AddCommand(docsDeleteCmd)
}
