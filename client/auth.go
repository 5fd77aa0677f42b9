package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAuthenticated means no usable token exists. It is a precondition
// failure: no request is issued and nothing is retried.
var ErrNotAuthenticated = errors.New("not authenticated: run 'studycopilot login' first")

// TokenProvider hands out the bearer token for a single request. Providers
// must not cache beyond one call; the session store is the source of truth.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken serves a token injected from the environment.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", ErrNotAuthenticated
	}
	if expired(string(t)) {
		return "", fmt.Errorf("%w: token has expired", ErrNotAuthenticated)
	}
	return string(t), nil
}

// SessionStore reads the token from a file on every call and supports the
// login/logout commands.
type SessionStore struct {
	Path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{Path: path}
}

func (s *SessionStore) Token(ctx context.Context) (string, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNotAuthenticated
	}
	if expired(token) {
		return "", fmt.Errorf("%w: session has expired", ErrNotAuthenticated)
	}
	return token, nil
}

func (s *SessionStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(strings.TrimSpace(token)+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// expired inspects the token's exp claim without verifying the signature;
// verification is the backend's job. Opaque (non-JWT) tokens pass through.
func expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}
