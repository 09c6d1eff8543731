package nutrition

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ofir-cohen/fitlife-api/internal/httputil"
	"github.com/ofir-cohen/fitlife-api/internal/logging"
)

// Store is the persistence surface the handler needs
type Store interface {
	Create(ctx context.Context, userID uuid.UUID, food string, calories int) (*Log, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Log, error)
}

// Handler serves nutrition logging endpoints
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// CreateRequest is the payload for logging a food entry
type CreateRequest struct {
	UserID   string `json:"user_id"`
	Food     string `json:"food"`
	Calories int    `json:"calories"`
}

// CreateLog records a food entry
// @Summary      Log nutrition
// @Description  Record a food entry with its calorie count
// @Tags         nutrition
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Food entry"
// @Success      201 {object} Log
// @Failure      400 {object} httputil.ErrorResponse "Invalid request"
// @Security     BearerAuth
// @Router       /nutrition [post]
func (h *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid user id", httputil.CodeValidation, http.StatusBadRequest)
		return
	}
	if req.Food == "" {
		httputil.RespondErrorWithCode(w, "food is required", httputil.CodeValidation, http.StatusBadRequest)
		return
	}
	if req.Calories <= 0 {
		httputil.RespondErrorWithCode(w, "calories must be positive", httputil.CodeValidation, http.StatusBadRequest)
		return
	}

	created, err := h.store.Create(r.Context(), userID, req.Food, req.Calories)
	if err != nil {
		logger.Error("failed to create nutrition log", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create nutrition log", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// ListLogs returns all food entries for a user
// @Summary      List nutrition logs
// @Description  Fetch all food entries logged by a user
// @Tags         nutrition
// @Produce      json
// @Param        user_id path string true "User ID"
// @Success      200 {array} Log
// @Failure      404 {object} httputil.ErrorResponse "No logs found"
// @Security     BearerAuth
// @Router       /nutrition/{user_id} [get]
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid user id", httputil.CodeValidation, http.StatusBadRequest)
		return
	}

	logs, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list nutrition logs", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list nutrition logs", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}
	if len(logs) == 0 {
		httputil.RespondErrorWithCode(w, "no nutrition logs found for user", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	httputil.RespondJSON(w, logs, http.StatusOK)
}
