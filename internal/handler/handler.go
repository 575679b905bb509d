package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Jamolkhon5/sewing-assistant/internal/ai/sewing/prompts"
	"github.com/Jamolkhon5/sewing-assistant/internal/llm"
	"github.com/Jamolkhon5/sewing-assistant/internal/models"
)

const (
	errAuthentication = "API authentication failed. Please check your OpenAI API key."
	errRateLimit      = "Rate limit exceeded. Please try again later."
	errUpstream       = "Failed to get response from AI service."
	errUnexpected     = "An unexpected error occurred."
)

// Responder answers a message without contacting the upstream service.
type Responder interface {
	Classify(message string) string
}

// ExchangeRecorder persists handled exchanges. Failures never change the
// response sent to the client.
type ExchangeRecorder interface {
	SaveExchange(ctx context.Context, exchange models.Exchange) error
}

type Handler struct {
	fallback  Responder
	completer llm.Completer
	recorder  ExchangeRecorder
	logger    *zap.Logger
}

// NewHandler builds the chat handler. A nil completer puts the handler in
// fallback mode; recorder may be nil.
func NewHandler(fallback Responder, completer llm.Completer, recorder ExchangeRecorder, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		fallback:  fallback,
		completer: completer,
		recorder:  recorder,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/chat", h.Chat)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))
	exchange := models.Exchange{Mode: models.ModeUpstream}
	if h.completer == nil {
		exchange.Mode = models.ModeFallback
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Server Error", zap.Any("panic", rec))
			h.fail(w, r, log, &exchange, http.StatusInternalServerError, errUnexpected)
		}
	}()

	message, err := decodeMessage(r)
	if err != nil {
		log.Error("Server Error", zap.Error(err))
		h.fail(w, r, log, &exchange, http.StatusInternalServerError, errUnexpected)
		return
	}
	exchange.Message = message

	if h.completer == nil {
		h.succeed(w, r, log, &exchange, h.fallback.Classify(message))
		return
	}

	messages := []models.Message{
		{Role: models.RoleSystem, Content: prompts.SystemPrompt},
		{Role: models.RoleUser, Content: message},
	}

	response, err := h.completer.Complete(r.Context(), messages)
	switch {
	case errors.Is(err, llm.ErrAuthentication):
		log.Error("Upstream API authentication error: please check your API key", zap.Error(err))
		h.fail(w, r, log, &exchange, http.StatusUnauthorized, errAuthentication)
	case errors.Is(err, llm.ErrRateLimited):
		log.Warn("Upstream API rate limit error: too many requests", zap.Error(err))
		h.fail(w, r, log, &exchange, http.StatusTooManyRequests, errRateLimit)
	case err != nil:
		log.Error("Upstream API error", zap.Error(err))
		h.fail(w, r, log, &exchange, http.StatusInternalServerError, errUpstream)
	default:
		h.succeed(w, r, log, &exchange, response)
	}
}

// decodeMessage extracts the message field from a JSON object body. A
// missing or non-string message is treated as empty; a body that is not a
// JSON object, or one followed by trailing data, is an error.
func decodeMessage(r *http.Request) (string, error) {
	var body map[string]json.RawMessage
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return "", errors.New("invalid request body: trailing data after JSON object")
	}
	if body == nil {
		return "", errors.New("invalid request body: expected a JSON object")
	}

	var message string
	if raw, ok := body["message"]; ok {
		if err := json.Unmarshal(raw, &message); err != nil {
			message = ""
		}
	}
	return message, nil
}

func (h *Handler) succeed(w http.ResponseWriter, r *http.Request, log *zap.Logger, exchange *models.Exchange, response string) {
	exchange.Status = http.StatusOK
	exchange.Response = response
	h.record(r.Context(), log, *exchange)
	writeJSON(w, http.StatusOK, models.ChatResponse{Success: true, Response: response})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *zap.Logger, exchange *models.Exchange, status int, message string) {
	exchange.Status = status
	exchange.Error = message
	h.record(r.Context(), log, *exchange)
	writeJSON(w, status, models.ChatResponse{Success: false, Error: message})
}

func (h *Handler) record(ctx context.Context, log *zap.Logger, exchange models.Exchange) {
	if h.recorder == nil {
		return
	}
	if err := h.recorder.SaveExchange(context.WithoutCancel(ctx), exchange); err != nil {
		log.Warn("failed to record exchange", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
