package client

import (
	"context"
	"net/http"

	"github.com/studycopilot/studycopilot-cli/types"
)

func (c *Client) GenerateQuiz(ctx context.Context, req types.QuizRequest) (*types.Quiz, error) {
	var quiz types.Quiz
	if err := c.doJSON(ctx, http.MethodPost, "/quiz/generate", req, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}
