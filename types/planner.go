package types

import "time"

// PlanTask is a single unit of work inside a study-plan day.
type PlanTask struct {
	ID              string `json:"id"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Type            string `json:"type"`
	Completed       bool   `json:"completed"`
}

type PlanDay struct {
	DayNumber int        `json:"day_number"`
	Date      string     `json:"date,omitempty"`
	Topics    []string   `json:"topics,omitempty"`
	Tasks     []PlanTask `json:"tasks"`
}

// PlanDetail is the generated schedule itself, nested under StudyPlan.Plan.
type PlanDetail struct {
	Title string    `json:"title,omitempty"`
	Days  []PlanDay `json:"days"`
}

type StudyPlan struct {
	ID           string     `json:"id"`
	Title        string     `json:"title,omitempty"`
	DocumentIDs  []string   `json:"document_ids,omitempty"`
	Plan         PlanDetail `json:"plan"`
	Status       string     `json:"status"`
	DurationDays int        `json:"duration_days,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
