package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studycopilot/studycopilot-cli/client"
	"github.com/studycopilot/studycopilot-cli/config"
	"github.com/studycopilot/studycopilot-cli/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "studycopilot",
	Short: "Terminal client for the StudyCopilot study assistant",
	Long: `studycopilot is a terminal client for the StudyCopilot backend.

Upload PDFs into your library, group them into notebooks, chat with their
contents, generate quizzes and summaries, and track a study plan, all from
the command line. The backend does the heavy lifting; this client renders
state and issues REST calls.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional)")
}

// app bundles the pieces every command needs.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	api     *client.Client
	session *client.SessionStore
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(resolvePath(cfg.LogFile), cfg.Debug)
	session := client.NewSessionStore(resolvePath(cfg.SessionFile))

	// A token from the environment wins over the stored session.
	var tokens client.TokenProvider = session
	if cfg.AccessToken != "" {
		tokens = client.StaticToken(cfg.AccessToken)
	}

	api := client.New(cfg.APIBaseURL, cfg.RequestTimeout, tokens, log)
	return &app{cfg: cfg, log: log, api: api, session: session}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// resolvePath anchors relative paths at the user's home directory so the
// session and log files land in one predictable place.
func resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path)
}

// confirm blocks on a yes/no prompt; destructive commands call it before any
// request is issued.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
