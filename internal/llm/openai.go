package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/Jamolkhon5/sewing-assistant/internal/models"
)

type chatCompletionClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAI completes conversations through the Chat Completions API.
type OpenAI struct {
	chat        chatCompletionClient
	model       string
	maxTokens   int64
	temperature float64
}

func NewOpenAI(opts Options) *OpenAI {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.ApiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := openai.NewClient(reqOpts...)
	service := client.Chat.Completions

	return &OpenAI{
		chat:        &service,
		model:       opts.Model,
		maxTokens:   int64(opts.MaxTokens),
		temperature: opts.Temperature,
	}
}

func (o *OpenAI) Complete(ctx context.Context, messages []models.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(o.model),
		Messages:    make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
		MaxTokens:   openai.Int(o.maxTokens),
		Temperature: openai.Float(o.temperature),
	}
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case models.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := o.chat.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", classifyStatus(apiErr.StatusCode, fmt.Errorf("openai chat completion: %w", err))
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w: no choices", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
