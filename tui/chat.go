package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studycopilot/studycopilot-cli/service"
	"github.com/studycopilot/studycopilot-cli/types"
)

// chatReplyMsg reports a finished chat query. seq pairs it with the send that
// issued it; a reply arriving after the user already moved on is discarded.
type chatReplyMsg struct {
	seq int
	err error
}

// ChatModel is the interactive chat view for one notebook.
type ChatModel struct {
	svc     *service.ChatService
	title   string
	timeout time.Duration

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	waiting  bool
	seq      int
	errMsg   string
	ready    bool
	quitting bool
	width    int
}

func NewChatModel(svc *service.ChatService, notebookTitle string, timeout time.Duration) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Ask about your documents..."
	ta.Focus()
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ChatModel{
		svc:      svc,
		title:    notebookTitle,
		timeout:  timeout,
		textarea: ta,
		spinner:  sp,
		width:    80,
	}
}

func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m ChatModel) sendCmd(text string) tea.Cmd {
	seq := m.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		err := m.svc.Send(ctx, text)
		return chatReplyMsg{seq: seq, err: err}
	}
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := 2
		footerHeight := 5
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.textarea.SetWidth(msg.Width - 2)
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, nil

	case chatReplyMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.waiting = false
		m.errMsg = ""
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.seq++ // drop any in-flight reply
			m.quitting = true
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.textarea.Reset()
			m.waiting = true
			m.seq++
			m.viewport.SetContent(m.renderMessages())
			m.viewport.GotoBottom()
			return m, m.sendCmd(text)
		}
	}

	var taCmd, vpCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, taCmd, vpCmd)
	return m, tea.Batch(cmds...)
}

func (m ChatModel) renderMessages() string {
	var b strings.Builder
	for _, msg := range m.svc.Messages() {
		switch msg.Role {
		case types.RoleUser:
			b.WriteString(userMsgStyle.Render("You: ") + msg.Content + "\n\n")
		default:
			b.WriteString(assistantMsgStyle.Render(msg.Content) + "\n")
			if len(msg.Sources) > 0 {
				b.WriteString(sourceStyle.Render(renderSources(msg.Sources)) + "\n")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderSources(sources []types.Source) string {
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		switch {
		case s.Page > 0:
			parts = append(parts, fmt.Sprintf("Page %d", s.Page))
		case s.ChunkID != "":
			parts = append(parts, s.ChunkID)
		}
	}
	return "Sources: " + strings.Join(parts, ", ")
}

func (m ChatModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n " + m.spinner.View() + " Loading..."
	}

	status := subtleStyle.Render("enter: send • esc: quit")
	if m.waiting {
		status = m.spinner.View() + " Thinking..."
	}
	if m.errMsg != "" {
		status = errorStyle.Render(m.errMsg)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s",
		titleStyle.Render(" Chat — "+m.title),
		m.viewport.View(),
		m.textarea.View(),
		footerStyle.Render(" "+status),
	)
}
