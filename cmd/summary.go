package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studycopilot/studycopilot-cli/types"
)

var (
	summaryDocs   []string
	summaryLength string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate a summary of one or more documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(summaryDocs) == 0 {
			return fmt.Errorf("pass at least one document id with --docs")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		summary, err := a.api.GenerateSummary(context.Background(), types.SummaryRequest{
			DocumentIDs: summaryDocs,
			Length:      summaryLength,
		})
		if err != nil {
			return err
		}
		fmt.Println(summary.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringSliceVarP(&summaryDocs, "docs", "d", nil, "document ids to summarize")
	summaryCmd.Flags().StringVarP(&summaryLength, "length", "l", "medium", "summary length: short, medium or long")
}
