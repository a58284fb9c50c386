package ghpages

import (
	"fmt"
	"strings"
)

// Typed publish errors enabling structured classification without string parsing upstream.

type AuthError struct {
	Op, URL string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s auth error for %s: %v", e.Op, e.URL, e.Err)
}
func (e *AuthError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Op, URL string
	Err     error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found %s: %v", e.Op, e.URL, e.Err)
}
func (e *NotFoundError) Unwrap() error { return e.Err }

type RejectedError struct {
	Op, URL string
	Err     error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected by %s: %v", e.Op, e.URL, e.Err)
}
func (e *RejectedError) Unwrap() error { return e.Err }

// classifyPublishError wraps underlying go-git errors into typed variants when possible.
func classifyPublishError(op, url string, err error) error {
	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "auth fail") || strings.Contains(l, "invalid username or password"):
		return &AuthError{Op: op, URL: url, Err: err}
	case strings.Contains(l, "not found") || strings.Contains(l, "repository does not exist"):
		return &NotFoundError{Op: op, URL: url, Err: err}
	case strings.Contains(l, "non-fast-forward") || strings.Contains(l, "rejected"):
		return &RejectedError{Op: op, URL: url, Err: err}
	default:
		return fmt.Errorf("failed to %s %s: %w", op, url, err)
	}
}
