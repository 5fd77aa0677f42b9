package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/studycopilot/studycopilot-cli/types"
	"go.uber.org/zap"
)

// QuizState tracks where a quiz session is in its lifecycle.
type QuizState int

const (
	QuizIdle QuizState = iota
	QuizLoading
	QuizInProgress
	QuizCompleted
)

func (s QuizState) String() string {
	switch s {
	case QuizIdle:
		return "idle"
	case QuizLoading:
		return "loading"
	case QuizInProgress:
		return "in_progress"
	case QuizCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Unanswered is the sentinel stored in SelectedAnswers for questions the user
// has not picked an option for yet.
const Unanswered = -1

var (
	ErrNoActiveQuiz  = errors.New("no quiz in progress")
	ErrQuizNotScored = errors.New("quiz has not been scored yet")
)

// QuizGenerator is the slice of the API the quiz service needs.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req types.QuizRequest) (*types.Quiz, error)
}

// QuizSession is the transient state of one quiz attempt. It is never
// persisted: navigating away discards it, retaking resets it in place.
type QuizSession struct {
	DocumentIDs     []string
	Questions       []types.QuizQuestion
	CurrentIndex    int
	SelectedAnswers []int
	Scored          bool
	Score           int
}

// QuizService drives a quiz through generate, answer, navigate, score and
// retake. Generation happens on a background goroutine in the interactive
// view, so state access is guarded.
type QuizService struct {
	mu      sync.Mutex
	api     QuizGenerator
	log     *zap.Logger
	state   QuizState
	session *QuizSession
}

func NewQuizService(api QuizGenerator, log *zap.Logger) *QuizService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizService{api: api, log: log, state: QuizIdle}
}

func (s *QuizService) State() QuizState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Session returns a snapshot of the current session, or nil when idle or
// loading. The copy keeps callers from mutating answers behind the lock.
func (s *QuizService) Session() *QuizSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	snapshot := *s.session
	snapshot.Questions = append([]types.QuizQuestion(nil), s.session.Questions...)
	snapshot.SelectedAnswers = append([]int(nil), s.session.SelectedAnswers...)
	snapshot.DocumentIDs = append([]string(nil), s.session.DocumentIDs...)
	return &snapshot
}

// Generate requests a new quiz for the given documents. On failure the
// service returns to idle with no partial session; there is no retry.
func (s *QuizService) Generate(ctx context.Context, documentIDs []string, numQuestions int, difficulty string) error {
	if len(documentIDs) == 0 {
		return errors.New("at least one document is required")
	}
	if numQuestions <= 0 {
		numQuestions = 5
	}
	if difficulty == "" {
		difficulty = "medium"
	}

	s.mu.Lock()
	s.state = QuizLoading
	s.session = nil
	s.mu.Unlock()

	quiz, err := s.api.GenerateQuiz(ctx, types.QuizRequest{
		DocumentIDs:  documentIDs,
		NumQuestions: numQuestions,
		Difficulty:   difficulty,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = QuizIdle
		s.log.Warn("quiz generation failed", zap.Strings("document_ids", documentIDs), zap.Error(err))
		return fmt.Errorf("quiz generation failed: %w", err)
	}
	if len(quiz.Questions) == 0 {
		s.state = QuizIdle
		return errors.New("quiz generation failed: server returned no questions")
	}

	answers := make([]int, len(quiz.Questions))
	for i := range answers {
		answers[i] = Unanswered
	}
	s.session = &QuizSession{
		DocumentIDs:     append([]string(nil), documentIDs...),
		Questions:       quiz.Questions,
		CurrentIndex:    0,
		SelectedAnswers: answers,
	}
	s.state = QuizInProgress
	s.log.Info("quiz ready", zap.String("quiz_id", quiz.ID), zap.Int("questions", len(quiz.Questions)))
	return nil
}

// SelectAnswer records the option picked for the current question,
// overwriting any earlier pick. Selecting the same option twice is a no-op.
func (s *QuizService) SelectAnswer(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != QuizInProgress {
		return ErrNoActiveQuiz
	}
	q := s.session.Questions[s.session.CurrentIndex]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return fmt.Errorf("option %d out of range for question with %d options", optionIndex, len(q.Options))
	}
	s.session.SelectedAnswers[s.session.CurrentIndex] = optionIndex
	return nil
}

// CurrentAnswered reports whether the current question has a selection; the
// interactive view uses it to gate advancement. It is a UX guard only;
// scoring treats unanswered questions as incorrect.
func (s *QuizService) CurrentAnswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != QuizInProgress {
		return false
	}
	return s.session.SelectedAnswers[s.session.CurrentIndex] != Unanswered
}

// Next advances to the next question, or scores the session when the current
// question is the last one.
func (s *QuizService) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != QuizInProgress {
		return ErrNoActiveQuiz
	}
	if s.session.CurrentIndex < len(s.session.Questions)-1 {
		s.session.CurrentIndex++
		return nil
	}

	correct := 0
	for i, q := range s.session.Questions {
		if s.session.SelectedAnswers[i] == q.CorrectAnswer {
			correct++
		}
	}
	s.session.Score = correct
	s.session.Scored = true
	s.state = QuizCompleted
	s.log.Info("quiz scored", zap.Int("score", correct), zap.Int("total", len(s.session.Questions)))
	return nil
}

// Retake clears answers and score but keeps the generated questions; no new
// generation call is made.
func (s *QuizService) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != QuizCompleted {
		return ErrQuizNotScored
	}
	for i := range s.session.SelectedAnswers {
		s.session.SelectedAnswers[i] = Unanswered
	}
	s.session.CurrentIndex = 0
	s.session.Score = 0
	s.session.Scored = false
	s.state = QuizInProgress
	return nil
}

// Exit discards the session entirely.
func (s *QuizService) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.state = QuizIdle
}

// Percentage is the scored result as a whole percent, round half up. A
// session with zero questions scores zero rather than dividing by zero.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
