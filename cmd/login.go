package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginToken string

// The auth provider issues tokens out of band (web login); this command only
// stores one for subsequent requests.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an access token for the backend",
	Long: `Store an access token in the local session file.

Obtain the token from the StudyCopilot web app (or your auth provider) and
pass it with --token, or paste it at the prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		token := strings.TrimSpace(loginToken)
		if token == "" {
			fmt.Print("Access token: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			token = strings.TrimSpace(line)
		}
		if token == "" {
			return errors.New("no token provided")
		}

		if err := a.session.Save(token); err != nil {
			return err
		}
		fmt.Println("Session saved.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.session.Clear(); err != nil {
			return err
		}
		fmt.Println("Session cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVarP(&loginToken, "token", "t", "", "access token issued by the auth provider")
}
