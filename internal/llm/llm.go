package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Jamolkhon5/sewing-assistant/internal/models"
)

var (
	ErrAuthentication = errors.New("upstream authentication failed")
	ErrRateLimited    = errors.New("upstream rate limit exceeded")
	ErrEmptyResponse  = errors.New("upstream returned an empty response")
)

// Completer sends an ordered, role-tagged conversation to a completion API and
// returns the generated text. Implementations return errors wrapping
// ErrAuthentication or ErrRateLimited for the matching upstream failures.
type Completer interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
}

// Options are the fixed generation parameters shared by all providers.
type Options struct {
	ApiKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
}

// New returns the Completer for provider.
func New(ctx context.Context, provider string, opts Options) (Completer, error) {
	switch provider {
	case "openai":
		return NewOpenAI(opts), nil
	case "anthropic":
		return NewAnthropic(opts), nil
	case "gemini":
		return NewGemini(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

// classifyStatus maps an upstream HTTP status onto the sentinel errors.
func classifyStatus(status int, err error) error {
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return err
	}
}

// splitSystem separates system instructions from the rest of the conversation
// for APIs that take them as a separate field.
func splitSystem(messages []models.Message) (system []string, rest []models.Message) {
	for _, m := range messages {
		if m.Role == models.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
