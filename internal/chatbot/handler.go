package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ofir-cohen/fitlife-api/internal/httputil"
	"github.com/ofir-cohen/fitlife-api/internal/logging"
)

// Asker answers a user question
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Cache memoizes answers; a nil Cache disables caching
type Cache interface {
	Get(ctx context.Context, question string) (string, bool, error)
	Set(ctx context.Context, question, reply string) error
}

// Handler serves the fitness chatbot endpoint
type Handler struct {
	client Asker
	cache  Cache
}

func NewHandler(client Asker, cache Cache) *Handler {
	return &Handler{client: client, cache: cache}
}

// AskRequest is the chatbot question payload
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the chatbot reply payload
type AskResponse struct {
	Response string `json:"response"`
}

// Ask answers a fitness or nutrition question
// @Summary      Ask the chatbot
// @Description  Send a fitness or nutrition question to the AI chatbot
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Param        request body AskRequest true "Question"
// @Success      200 {object} AskResponse
// @Failure      400 {object} httputil.ErrorResponse "Empty question"
// @Failure      502 {object} httputil.ErrorResponse "Upstream failure"
// @Security     BearerAuth
// @Router       /chatbot [post]
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if h.cache != nil {
		reply, hit, err := h.cache.Get(r.Context(), req.Question)
		if err != nil {
			logger.Warn("chatbot cache lookup failed", "error", err.Error())
		} else if hit {
			httputil.RespondJSON(w, AskResponse{Response: reply}, http.StatusOK)
			return
		}
	}

	reply, err := h.client.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, ErrEmptyQuestion) {
			httputil.RespondErrorWithCode(w, "question cannot be empty", httputil.CodeEmptyQuestion, http.StatusBadRequest)
			return
		}
		logger.Error("chatbot request failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "chatbot is unavailable", httputil.CodeUpstreamError, http.StatusBadGateway)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), req.Question, reply); err != nil {
			logger.Warn("chatbot cache store failed", "error", err.Error())
		}
	}

	httputil.RespondJSON(w, AskResponse{Response: reply}, http.StatusOK)
}
