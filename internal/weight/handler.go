package weight

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ofir-cohen/fitlife-api/internal/httputil"
	"github.com/ofir-cohen/fitlife-api/internal/logging"
)

// Store is the persistence surface the handler needs
type Store interface {
	Create(ctx context.Context, userID uuid.UUID, weight float64, date time.Time) (*Log, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Log, error)
}

// UserChecker reports whether a user exists
type UserChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Handler serves weight tracking endpoints
type Handler struct {
	store Store
	users UserChecker
}

func NewHandler(store Store, users UserChecker) *Handler {
	return &Handler{store: store, users: users}
}

// CreateRequest is the payload for logging a weight measurement
type CreateRequest struct {
	UserID string  `json:"user_id"`
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
}

// CreateLog records a weight measurement
// @Summary      Log weight
// @Description  Record a body-weight measurement for a user
// @Tags         weight
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Weight measurement"
// @Success      201 {object} Log
// @Failure      400 {object} httputil.ErrorResponse "Invalid request"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Security     BearerAuth
// @Router       /weight [post]
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
	if req.Weight <= 0 {
		httputil.RespondErrorWithCode(w, "weight must be positive", httputil.CodeValidation, http.StatusBadRequest)
		return
	}
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		httputil.RespondErrorWithCode(w, "date must be in YYYY-MM-DD format", httputil.CodeValidation, http.StatusBadRequest)
		return
	}

	exists, err := h.users.Exists(r.Context(), userID)
	if err != nil {
		logger.Error("failed to check user", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create weight log", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}
	if !exists {
		httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
		return
	}

	created, err := h.store.Create(r.Context(), userID, req.Weight, date)
	if err != nil {
		logger.Error("failed to create weight log", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create weight log", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// ListLogs returns a user's weight history ordered by date
// @Summary      List weight logs
// @Description  Fetch all weight measurements for a user, oldest first
// @Tags         weight
// @Produce      json
// @Param        user_id path string true "User ID"
// @Success      200 {array} Log
// @Failure      404 {object} httputil.ErrorResponse "No logs found"
// @Security     BearerAuth
// @Router       /weight/{user_id} [get]
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid user id", httputil.CodeValidation, http.StatusBadRequest)
		return
	}

	logs, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list weight logs", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list weight logs", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}
	if len(logs) == 0 {
		httputil.RespondErrorWithCode(w, "no weight logs found for user", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	httputil.RespondJSON(w, logs, http.StatusOK)
}
