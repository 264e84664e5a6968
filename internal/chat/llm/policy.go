package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"obsidian-club/internal/models"
)

// Failure classes the executor reacts to. The transport wraps upstream
// failures into one of these; anything else counts as a generic failure.
var (
	// ErrModelNotFound aborts the current model immediately and advances to
	// the next candidate.
	ErrModelNotFound = errors.New("model not found")
	// ErrOverloaded triggers a backoff delay and a retry of the same model.
	ErrOverloaded = errors.New("service overloaded")
	// ErrExhausted is terminal: every candidate model used up every attempt.
	ErrExhausted = errors.New("all models and retries exhausted")
)

// Policy is the declarative retry/fallback schedule: an ordered candidate
// list with a per-model attempt budget and a backoff curve. Keeping it as
// data makes the executor testable apart from the transport.
type Policy struct {
	Models      []string
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// LinearBackoff grows the delay linearly with the attempt number:
// step, 2*step, 3*step, ...
func LinearBackoff(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// Completer is the transport the executor drives.
type Completer interface {
	Complete(ctx context.Context, model string, messages []models.ChatMessage) (string, error)
}

// Invoker walks the policy's model list, retrying each candidate up to
// MaxAttempts before falling through to the next.
type Invoker struct {
	Client Completer
	Policy Policy
	Sleep  func(time.Duration) // injectable for tests; nil means time.Sleep
	Warn   func(message string)
}

func (inv *Invoker) sleep(d time.Duration) {
	if inv.Sleep != nil {
		inv.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (inv *Invoker) warn(msg string) {
	if inv.Warn != nil {
		inv.Warn(msg)
	}
}

// Invoke runs the conversation against the first candidate model that
// answers. An overloaded model is retried after a growing delay; an unknown
// model is skipped at once; any model that exhausts its attempts hands over
// to the next. When the whole matrix is spent the error wraps ErrExhausted
// and the caller substitutes the user-facing apology.
func (inv *Invoker) Invoke(ctx context.Context, messages []models.ChatMessage) (string, error) {
	var lastErr error

	for _, model := range inv.Policy.Models {
		for attempt := 1; attempt <= inv.Policy.MaxAttempts; attempt++ {
			reply, err := inv.Client.Complete(ctx, model, messages)
			if err == nil {
				return reply, nil
			}
			lastErr = err

			if errors.Is(err, ErrModelNotFound) {
				inv.warn(fmt.Sprintf("model %s not found, advancing to next candidate", model))
				break
			}

			if errors.Is(err, ErrOverloaded) && attempt < inv.Policy.MaxAttempts {
				delay := inv.Policy.Backoff(attempt)
				inv.warn(fmt.Sprintf("model %s overloaded (attempt %d/%d), backing off %s",
					model, attempt, inv.Policy.MaxAttempts, delay))
				inv.sleep(delay)
				continue
			}

			inv.warn(fmt.Sprintf("model %s failed (attempt %d/%d): %v",
				model, attempt, inv.Policy.MaxAttempts, err))
		}
	}

	return "", fmt.Errorf("%w: %v", ErrExhausted, lastErr)
}
