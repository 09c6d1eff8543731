package workout

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
	Create(ctx context.Context, userID uuid.UUID, exercise string, duration int, date time.Time) (*Workout, error)
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]Workout, error)
}

// Handler serves workout logging endpoints
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// CreateRequest is the payload for logging a workout
type CreateRequest struct {
	UserID   string `json:"user_id"`
	Exercise string `json:"exercise"`
	Duration int    `json:"duration"`
	Date     string `json:"date"`
}

// CreateWorkout logs a workout entry
// @Summary      Log workout
// @Description  Record an exercise session for a user
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Workout details"
// @Success      201 {object} Workout
// @Failure      400 {object} httputil.ErrorResponse "Invalid request"
// @Security     BearerAuth
// @Router       /workouts [post]
func (h *Handler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
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
	if req.Exercise == "" {
		httputil.RespondErrorWithCode(w, "exercise is required", httputil.CodeValidation, http.StatusBadRequest)
		return
	}
	if req.Duration <= 0 {
		httputil.RespondErrorWithCode(w, "duration must be positive", httputil.CodeValidation, http.StatusBadRequest)
		return
	}

	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		httputil.RespondErrorWithCode(w, "date must be in YYYY-MM-DD format", httputil.CodeValidation, http.StatusBadRequest)
		return
	}

	created, err := h.store.Create(r.Context(), userID, req.Exercise, req.Duration, date)
	if err != nil {
		logger.Error("failed to create workout", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create workout", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// ListWorkouts returns a user's workouts for a given day
// @Summary      List workouts
// @Description  Fetch all workouts logged by a user on a specific date
// @Tags         workouts
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {array} Workout
// @Failure      400 {object} httputil.ErrorResponse "Missing or invalid date"
// @Security     BearerAuth
// @Router       /workouts/{user_id} [get]
func (h *Handler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid user id", httputil.CodeValidation, http.StatusBadRequest)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		httputil.RespondErrorWithCode(w, "date query parameter is required", httputil.CodeValidation, http.StatusBadRequest)
		return
	}
	date, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		httputil.RespondErrorWithCode(w, "date must be in YYYY-MM-DD format", httputil.CodeValidation, http.StatusBadRequest)
		return
	}

	workouts, err := h.store.ListByUserAndDate(r.Context(), userID, date)
	if err != nil {
		logger.Error("failed to list workouts", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list workouts", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, workouts, http.StatusOK)
}
