package domain

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies every failure the scheduler has to react to. The set is closed.
type Kind int

const (
	KindAPI Kind = iota
	KindConfig
	KindAuth
	KindAI
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindAuth:
		return "auth"
	case KindAI:
		return "ai"
	default:
		return "api"
	}
}

// Error is the tagged error carried across the application layer.
type Error struct {
	Kind Kind
	Op   string
	// Status is the platform status code when the failure came from a response.
	Status int
	// RetryAfter is set when the platform asked the caller to back off.
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ConfigError(op string, err error) error {
	return &Error{Kind: KindConfig, Op: op, Err: err}
}

func AuthError(op string, status int, err error) error {
	return &Error{Kind: KindAuth, Op: op, Status: status, Err: err}
}

func APIError(op string, status int, err error) error {
	return &Error{Kind: KindAPI, Op: op, Status: status, Err: err}
}

func AIError(op string, err error) error {
	return &Error{Kind: KindAI, Op: op, Err: err}
}

// RateLimitError is an API error carrying the platform's suggested wait.
func RateLimitError(op string, retryAfter time.Duration, err error) error {
	return &Error{Kind: KindAPI, Op: op, Status: 429, RetryAfter: retryAfter, Err: err}
}

// KindOf reports the kind of err. Untagged errors are treated as API errors.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}

	return KindAPI
}

func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}

	return KindOf(err) == kind
}

// RetryAfter returns the rate-limit wait carried by err, if any.
func RetryAfter(err error) (time.Duration, bool) {
	var tagged *Error
	if errors.As(err, &tagged) && tagged.RetryAfter > 0 {
		return tagged.RetryAfter, true
	}

	return 0, false
}

var (
	ErrNotInitialized = errors.New("session not initialized")
	ErrEmptyContent   = errors.New("platform accepted the request without echoing content")
	ErrSecretNotFound = errors.New("secret not found")
)
