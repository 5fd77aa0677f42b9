package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/studycopilot/studycopilot-cli/types"
	"go.uber.org/zap"
)

var ErrNoActivePlan = errors.New("no active study plan")

// PlannerAPI is the slice of the API the planner service needs.
type PlannerAPI interface {
	GenerateStudyPlan(ctx context.Context, req types.StudyPlanRequest) (*types.StudyPlan, error)
	ListStudyPlans(ctx context.Context) ([]types.StudyPlan, error)
	UpdateTaskStatus(ctx context.Context, planID string, dayNumber int, taskID string, completed bool) error
}

// PlannerService manages study plans and the completion state of their tasks.
// Task toggles are two-phase: the new value is applied locally and marked
// pending, then confirmed on a successful PATCH or rolled back on failure.
type PlannerService struct {
	mu      sync.Mutex
	api     PlannerAPI
	log     *zap.Logger
	active  *types.StudyPlan
	pending map[string]bool
}

func NewPlannerService(api PlannerAPI, log *zap.Logger) *PlannerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlannerService{api: api, log: log, pending: make(map[string]bool)}
}

func (s *PlannerService) Generate(ctx context.Context, documentIDs []string, examDate string, hoursPerDay int) (*types.StudyPlan, error) {
	if len(documentIDs) == 0 {
		return nil, errors.New("at least one document is required")
	}
	if examDate == "" {
		return nil, errors.New("exam date is required")
	}
	if hoursPerDay <= 0 {
		hoursPerDay = 2
	}
	plan, err := s.api.GenerateStudyPlan(ctx, types.StudyPlanRequest{
		DocumentIDs: documentIDs,
		ExamDate:    examDate,
		HoursPerDay: hoursPerDay,
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.active = plan
	s.mu.Unlock()
	return plan, nil
}

// Load fetches all plans and keeps the first (most recent) as the active one.
func (s *PlannerService) Load(ctx context.Context) ([]types.StudyPlan, error) {
	plans, err := s.api.ListStudyPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plans: %w", err)
	}
	s.mu.Lock()
	if len(plans) > 0 {
		s.active = &plans[0]
	} else {
		s.active = nil
	}
	s.pending = make(map[string]bool)
	s.mu.Unlock()
	return plans, nil
}

func (s *PlannerService) Active() *types.StudyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ToggleTask sets a task's completion on the active plan. The local value
// flips immediately and the task is marked pending; if the server rejects the
// update the value is rolled back.
func (s *PlannerService) ToggleTask(ctx context.Context, dayNumber int, taskID string, completed bool) error {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return ErrNoActivePlan
	}
	task := findTask(s.active, dayNumber, taskID)
	if task == nil {
		s.mu.Unlock()
		return fmt.Errorf("task %s not found on day %d", taskID, dayNumber)
	}
	previous := task.Completed
	task.Completed = completed
	key := taskKey(dayNumber, taskID)
	s.pending[key] = true
	planID := s.active.ID
	s.mu.Unlock()

	err := s.api.UpdateTaskStatus(ctx, planID, dayNumber, taskID, completed)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
	if err != nil {
		// Roll back; the same task pointer is still valid under the lock.
		if task := findTask(s.active, dayNumber, taskID); task != nil {
			task.Completed = previous
		}
		s.log.Warn("task update rejected, rolled back",
			zap.String("plan_id", planID),
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// TaskPending reports whether a toggle for the task is still awaiting server
// confirmation.
func (s *PlannerService) TaskPending(dayNumber int, taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[taskKey(dayNumber, taskID)]
}

func taskKey(dayNumber int, taskID string) string {
	return fmt.Sprintf("%d/%s", dayNumber, taskID)
}

func findTask(plan *types.StudyPlan, dayNumber int, taskID string) *types.PlanTask {
	if plan == nil {
		return nil
	}
	for di := range plan.Plan.Days {
		day := &plan.Plan.Days[di]
		if day.DayNumber != dayNumber {
			continue
		}
		for ti := range day.Tasks {
			if day.Tasks[ti].ID == taskID {
				return &day.Tasks[ti]
			}
		}
	}
	return nil
}
