package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/studycopilot/studycopilot-cli/service"
	"github.com/studycopilot/studycopilot-cli/tui"
)

var (
	quizDocs       []string
	quizNotebook   string
	quizQuestions  int
	quizDifficulty string
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate and take a quiz from your documents",
	Long: `Generate a multiple-choice quiz from one or more documents and take it
interactively. Pass document ids with --docs, or a notebook id with
--notebook to quiz on its first attached document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		docIDs := quizDocs
		if len(docIDs) == 0 && quizNotebook != "" {
			nbs := service.NewNotebookService(a.api, a.log)
			if err := nbs.Load(context.Background(), quizNotebook); err != nil {
				return err
			}
			attached := nbs.Attached()
			if len(attached) == 0 {
				return fmt.Errorf("notebook has no attached documents")
			}
			// Mirror the notebook view: quiz on the first attached document.
			docIDs = []string{attached[0].ID}
		}
		if len(docIDs) == 0 {
			return fmt.Errorf("pass document ids with --docs or a notebook with --notebook")
		}

		quiz := service.NewQuizService(a.api, a.log)
		model := tui.NewQuizModel(quiz, docIDs, quizQuestions, quizDifficulty, a.cfg.RequestTimeout)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.Flags().StringSliceVarP(&quizDocs, "docs", "d", nil, "document ids to quiz on")
	quizCmd.Flags().StringVarP(&quizNotebook, "notebook", "n", "", "notebook id to quiz on")
	quizCmd.Flags().IntVarP(&quizQuestions, "questions", "q", 5, "number of questions")
	quizCmd.Flags().StringVar(&quizDifficulty, "difficulty", "medium", "difficulty: easy, medium or hard")
}
