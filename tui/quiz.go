package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studycopilot/studycopilot-cli/service"
)

// quizGeneratedMsg reports the outcome of a generation call. The gen field
// ties the message to the request that produced it so replies landing after
// the model moved on are dropped instead of written into dead state.
type quizGeneratedMsg struct {
	gen int
	err error
}

// QuizModel is the interactive quiz view: generate, answer, advance, review,
// retake.
type QuizModel struct {
	svc          *service.QuizService
	documentIDs  []string
	numQuestions int
	difficulty   string
	timeout      time.Duration

	spinner  spinner.Model
	progress progress.Model
	gen      int
	errMsg   string
	quitting bool
	width    int
}

func NewQuizModel(svc *service.QuizService, documentIDs []string, numQuestions int, difficulty string, timeout time.Duration) QuizModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return QuizModel{
		svc:          svc,
		documentIDs:  documentIDs,
		numQuestions: numQuestions,
		difficulty:   difficulty,
		timeout:      timeout,
		spinner:      sp,
		progress:     progress.New(progress.WithDefaultGradient()),
		width:        80,
	}
}

func (m QuizModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.generateCmd())
}

func (m QuizModel) generateCmd() tea.Cmd {
	gen := m.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		err := m.svc.Generate(ctx, m.documentIDs, m.numQuestions, m.difficulty)
		return quizGeneratedMsg{gen: gen, err: err}
	}
}

func (m QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-8, 60)
		return m, nil

	case quizGeneratedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m QuizModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.svc.Exit()
		m.gen++ // anything still in flight is stale now
		m.quitting = true
		return m, tea.Quit
	}

	switch m.svc.State() {
	case service.QuizInProgress:
		key := msg.String()
		if idx := optionIndex(key); idx >= 0 {
			// Out-of-range picks are ignored rather than surfaced.
			_ = m.svc.SelectAnswer(idx)
			return m, nil
		}
		if key == "enter" || key == "n" {
			if m.svc.CurrentAnswered() {
				_ = m.svc.Next()
			}
			return m, nil
		}
	case service.QuizCompleted:
		if msg.String() == "r" {
			_ = m.svc.Retake()
			return m, nil
		}
	}
	return m, nil
}

// optionIndex maps 1-4 and a-d to an option slot, -1 for anything else.
func optionIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1')
	case c >= 'a' && c <= 'd':
		return int(c - 'a')
	}
	return -1
}

func (m QuizModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.svc.State() {
	case service.QuizLoading:
		return fmt.Sprintf("\n %s Generating your quiz...\n\n %s\n",
			m.spinner.View(),
			subtleStyle.Render("Reading document and crafting questions"))
	case service.QuizInProgress:
		return m.viewQuestion()
	case service.QuizCompleted:
		return m.viewResults()
	default:
		if m.errMsg != "" {
			return fmt.Sprintf("\n %s\n\n %s\n",
				errorStyle.Render(m.errMsg),
				footerStyle.Render("q: quit"))
		}
		return "\n " + subtleStyle.Render("No quiz loaded.") + "\n"
	}
}

func (m QuizModel) viewQuestion() string {
	sess := m.svc.Session()
	if sess == nil {
		return ""
	}
	q := sess.Questions[sess.CurrentIndex]
	selected := sess.SelectedAnswers[sess.CurrentIndex]

	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Quiz Mode") + "\n")
	b.WriteString(" " + subtleStyle.Render(fmt.Sprintf("Question %d of %d", sess.CurrentIndex+1, len(sess.Questions))) + "\n\n")
	b.WriteString(" " + m.progress.ViewAs(float64(sess.CurrentIndex+1)/float64(len(sess.Questions))) + "\n")
	b.WriteString(questionStyle.Render(" "+q.Question) + "\n")

	for i, opt := range q.Options {
		label := fmt.Sprintf("%c) %s", 'a'+i, opt)
		if i == selected {
			b.WriteString(selectedOptionStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString(optionStyle.Render("  "+label) + "\n")
		}
	}

	next := "enter: next question"
	if sess.CurrentIndex == len(sess.Questions)-1 {
		next = "enter: finish quiz"
	}
	if selected == service.Unanswered {
		next = "select an answer to continue"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf(" a-d: select • %s • q: exit", next)))
	return b.String()
}

func (m QuizModel) viewResults() string {
	sess := m.svc.Session()
	if sess == nil {
		return ""
	}
	total := len(sess.Questions)
	pct := service.Percentage(sess.Score, total)

	var b strings.Builder
	b.WriteString("\n" + scoreStyle.Render(fmt.Sprintf("Quiz Complete\n\n%d%%\n\nYou scored %d out of %d", pct, sess.Score, total)) + "\n\n")

	for i, q := range sess.Questions {
		userAns := sess.SelectedAnswers[i]
		mark := wrongStyle.Render("✗")
		if userAns == q.CorrectAnswer {
			mark = correctStyle.Render("✓")
		}
		b.WriteString(fmt.Sprintf(" %s %s\n", mark, titleStyle.Render(q.Question)))
		for oi, opt := range q.Options {
			line := fmt.Sprintf("   %c) %s", 'a'+oi, opt)
			switch {
			case oi == q.CorrectAnswer:
				line += " (correct answer)"
				b.WriteString(correctStyle.Render(line) + "\n")
			case oi == userAns:
				line += " (your answer)"
				b.WriteString(wrongStyle.Render(line) + "\n")
			default:
				b.WriteString(optionStyle.Render(line) + "\n")
			}
		}
		if userAns == service.Unanswered {
			b.WriteString(subtleStyle.Render("   (not answered)") + "\n")
		}
		b.WriteString(sourceStyle.Render("   Explanation: "+q.Explanation) + "\n\n")
	}

	b.WriteString(footerStyle.Render(" r: retake quiz • q: exit"))
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
