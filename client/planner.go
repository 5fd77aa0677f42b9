package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/studycopilot/studycopilot-cli/types"
)

func (c *Client) GenerateStudyPlan(ctx context.Context, req types.StudyPlanRequest) (*types.StudyPlan, error) {
	var plan types.StudyPlan
	if err := c.doJSON(ctx, http.MethodPost, "/planner/generate", req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) ListStudyPlans(ctx context.Context) ([]types.StudyPlan, error) {
	var plans []types.StudyPlan
	if err := c.doJSON(ctx, http.MethodGet, "/planner", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, planID string, dayNumber int, taskID string, completed bool) error {
	path := fmt.Sprintf("/planner/%s/days/%d/tasks/%s?completed=%t",
		url.PathEscape(planID), dayNumber, url.PathEscape(taskID), completed)
	return c.doJSON(ctx, http.MethodPatch, path, nil, nil)
}
