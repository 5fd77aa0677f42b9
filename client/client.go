package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the StudyCopilot backend. It holds no domain state; every
// call reads a fresh token from the TokenProvider and carries the caller's
// context so in-flight requests can be cancelled.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenProvider
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, tokens TokenProvider, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// APIError is a non-2xx reply from the backend. Transport failures (network
// unreachable, timeout, cancellation) are returned as wrapped errors instead,
// so callers can tell the two kinds apart.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// errorBody matches the backend's error envelope ({"detail": "..."}).
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send authorizes and executes req, decoding a 2xx body into out when out is
// non-nil. The bearer token is read fresh per request.
func (c *Client) send(req *http.Request, out any) error {
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.asAPIError(resp, requestID)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) asAPIError(resp *http.Response, requestID string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		var body errorBody
		if json.Unmarshal(raw, &body) == nil {
			if body.Detail != "" {
				apiErr.Message = body.Detail
			} else {
				apiErr.Message = body.Message
			}
		}
	}

	c.log.Warn("request rejected",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.String("detail", apiErr.Message),
	)
	return apiErr
}
