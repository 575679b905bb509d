package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic_sdk "github.com/anthropics/anthropic-sdk-go"
	anthropic_option "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Jamolkhon5/sewing-assistant/internal/models"
)

type messageClient interface {
	New(ctx context.Context, body anthropic_sdk.MessageNewParams, opts ...anthropic_option.RequestOption) (*anthropic_sdk.Message, error)
}

// Anthropic completes conversations through the Messages API.
type Anthropic struct {
	messages    messageClient
	model       string
	maxTokens   int64
	temperature float64
}

func NewAnthropic(opts Options) *Anthropic {
	reqOpts := []anthropic_option.RequestOption{
		anthropic_option.WithAPIKey(opts.ApiKey),
		anthropic_option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, anthropic_option.WithBaseURL(opts.BaseURL))
	}

	client := anthropic_sdk.NewClient(reqOpts...)
	service := client.Messages

	return &Anthropic{
		messages:    &service,
		model:       opts.Model,
		maxTokens:   int64(opts.MaxTokens),
		temperature: opts.Temperature,
	}
}

func (a *Anthropic) Complete(ctx context.Context, messages []models.Message) (string, error) {
	system, rest := splitSystem(messages)

	params := anthropic_sdk.MessageNewParams{
		Model:       anthropic_sdk.Model(a.model),
		MaxTokens:   a.maxTokens,
		Temperature: anthropic_sdk.Float(a.temperature),
	}
	for _, text := range system {
		params.System = append(params.System, anthropic_sdk.TextBlockParam{Text: text})
	}
	for _, m := range rest {
		block := anthropic_sdk.NewTextBlock(m.Content)
		if m.Role == models.RoleAssistant {
			params.Messages = append(params.Messages, anthropic_sdk.NewAssistantMessage(block))
			continue
		}
		params.Messages = append(params.Messages, anthropic_sdk.NewUserMessage(block))
	}

	resp, err := a.messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic_sdk.Error
		if errors.As(err, &apiErr) {
			return "", classifyStatus(apiErr.StatusCode, fmt.Errorf("anthropic messages: %w", err))
		}
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var text strings.Builder
	found := false
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
			found = true
		}
	}
	if !found {
		return "", fmt.Errorf("anthropic: %w: no text blocks", ErrEmptyResponse)
	}
	return text.String(), nil
}
