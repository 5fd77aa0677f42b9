package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/studycopilot/studycopilot-cli/service"
	"github.com/studycopilot/studycopilot-cli/tui"
	"github.com/studycopilot/studycopilot-cli/types"
)

var chatNotebook string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the documents in a notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		if chatNotebook == "" {
			return fmt.Errorf("pass a notebook id with --notebook")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		nbs := service.NewNotebookService(a.api, a.log)
		if err := nbs.Load(context.Background(), chatNotebook); err != nil {
			return err
		}
		attached := nbs.Attached()
		if len(attached) == 0 {
			return fmt.Errorf("notebook has no attached documents; add some with 'studycopilot notebook add'")
		}

		ids := make([]string, len(attached))
		for i, d := range attached {
			ids[i] = d.ID
		}

		chat := service.NewChatService(a.api, ids, a.log)
		chat.Greet(attached[0].Title)

		model := tui.NewChatModel(chat, nbs.Notebook().Title, a.cfg.RequestTimeout)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

var chatSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored chat sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		sessions, err := a.api.ListChatSessions(context.Background())
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No chat sessions yet.")
			return nil
		}
		for _, s := range sessions {
			title := s.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("%s  %s  %s\n", s.ID, s.CreatedAt.Format("2006-01-02 15:04"), title)
		}
		return nil
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "Show the transcript of a stored chat session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		session, err := a.api.GetChatSession(context.Background(), args[0])
		if err != nil {
			return err
		}
		for _, msg := range session.Messages {
			who := "Assistant"
			if msg.Role == types.RoleUser {
				who = "You"
			}
			fmt.Printf("%s: %s\n\n", who, msg.Content)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatSessionsCmd)
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.Flags().StringVarP(&chatNotebook, "notebook", "n", "", "notebook id to chat with (required)")
}
