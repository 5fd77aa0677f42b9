package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/studycopilot/studycopilot-cli/types"
	"go.uber.org/zap"
)

const chatErrorReply = "Sorry, I encountered an error. Please try again."

// ChatAPI is the slice of the API the chat service needs.
type ChatAPI interface {
	ChatQuery(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error)
}

// ChatService holds the transcript for one open notebook view. The transcript
// is append-only and transient; only the server's session id round-trips into
// subsequent requests.
type ChatService struct {
	mu          sync.Mutex
	api         ChatAPI
	log         *zap.Logger
	documentIDs []string
	sessionID   string
	messages    []types.ChatMessage
}

func NewChatService(api ChatAPI, documentIDs []string, log *zap.Logger) *ChatService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatService{api: api, documentIDs: documentIDs, log: log}
}

// Greet seeds the transcript with the assistant's opening message for the
// given document. No request is made.
func (s *ChatService) Greet(documentTitle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) > 0 {
		return
	}
	s.messages = append(s.messages, types.ChatMessage{
		Role:    types.RoleAssistant,
		Content: fmt.Sprintf("Hello! I've analyzed %s. What would you like to know?", documentTitle),
	})
}

// Send appends the user message, queries the backend and appends the reply.
// On failure the transcript gets a generic apology entry and the error is
// returned for the caller to surface; the user message is kept so the user
// can see what failed.
func (s *ChatService) Send(ctx context.Context, text string) error {
	if text == "" {
		return errors.New("message is empty")
	}

	s.mu.Lock()
	if len(s.documentIDs) == 0 {
		s.mu.Unlock()
		return errors.New("no documents attached to this conversation")
	}
	s.messages = append(s.messages, types.ChatMessage{Role: types.RoleUser, Content: text})
	req := types.ChatRequest{
		DocumentIDs: append([]string(nil), s.documentIDs...),
		Message:     text,
		SessionID:   s.sessionID,
	}
	s.mu.Unlock()

	resp, err := s.api.ChatQuery(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.messages = append(s.messages, types.ChatMessage{Role: types.RoleAssistant, Content: chatErrorReply})
		s.log.Warn("chat query failed", zap.Error(err))
		return err
	}
	s.sessionID = resp.SessionID
	s.messages = append(s.messages, types.ChatMessage{
		Role:    types.RoleAssistant,
		Content: resp.Message,
		Sources: resp.Sources,
	})
	return nil
}

func (s *ChatService) Messages() []types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.ChatMessage(nil), s.messages...)
}

func (s *ChatService) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}
