package recommend

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ofir-cohen/fitlife-api/internal/httputil"
	"github.com/ofir-cohen/fitlife-api/internal/logging"
)

// Handler serves calorie recommendations and training programs
type Handler struct {
	catalog *ProgramCatalog
}

func NewHandler(catalog *ProgramCatalog) *Handler {
	return &Handler{catalog: catalog}
}

// CalorieResponse is the calorie recommendation payload
type CalorieResponse struct {
	RecommendedCalories float64 `json:"recommended_calories"`
	Target              string  `json:"target"`
}

// GetRecommendedCalories estimates daily calorie needs
// @Summary      Recommended calories
// @Description  Estimate daily calorie needs from age, weight, height, gender, activity level and target
// @Tags         recommendations
// @Produce      json
// @Param        age query int true "Age in years"
// @Param        weight query number true "Weight in kg"
// @Param        height query number true "Height in cm"
// @Param        gender query string true "male or female"
// @Param        activity_level query string true "low, medium or high"
// @Param        target query string false "Fitness target (muscle gain, weight loss)"
// @Success      200 {object} CalorieResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid parameters"
// @Router       /recommended-calories [get]
func (h *Handler) GetRecommendedCalories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	age, err := strconv.Atoi(q.Get("age"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "age must be an integer", httputil.CodeValidation, http.StatusBadRequest)
		return
	}
	weight, err := strconv.ParseFloat(q.Get("weight"), 64)
	if err != nil {
		httputil.RespondErrorWithCode(w, "weight must be a number", httputil.CodeValidation, http.StatusBadRequest)
		return
	}
	height, err := strconv.ParseFloat(q.Get("height"), 64)
	if err != nil {
		httputil.RespondErrorWithCode(w, "height must be a number", httputil.CodeValidation, http.StatusBadRequest)
		return
	}

	calories, err := RecommendedCalories(CalorieParams{
		Age:           age,
		Weight:        weight,
		Height:        height,
		Gender:        q.Get("gender"),
		ActivityLevel: q.Get("activity_level"),
		Target:        q.Get("target"),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidGender):
			httputil.RespondErrorWithCode(w, "invalid gender", httputil.CodeValidation, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidActivityLevel):
			httputil.RespondErrorWithCode(w, "invalid activity level", httputil.CodeValidation, http.StatusBadRequest)
		default:
			httputil.RespondErrorWithCode(w, "failed to compute recommendation", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	target := q.Get("target")
	if target == "" {
		target = "No specific target provided"
	}

	httputil.RespondJSON(w, CalorieResponse{
		RecommendedCalories: calories,
		Target:              target,
	}, http.StatusOK)
}

// ProgramsResponse lists the available training program goals
type ProgramsResponse struct {
	AvailablePrograms []string `json:"available_programs"`
}

// ListTrainingPrograms lists available training programs
// @Summary      List training programs
// @Description  List the training program goals available for download
// @Tags         training-programs
// @Produce      json
// @Success      200 {object} ProgramsResponse
// @Router       /training-programs [get]
func (h *Handler) ListTrainingPrograms(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, ProgramsResponse{AvailablePrograms: h.catalog.Goals()}, http.StatusOK)
}

// DownloadTrainingProgram serves a training program PDF
// @Summary      Download training program
// @Description  Download the PDF for a training program goal
// @Tags         training-programs
// @Produce      application/pdf
// @Param        goal path string true "Training goal"
// @Success      200 {file} file
// @Failure      404 {object} httputil.ErrorResponse "Program not found"
// @Router       /training-programs/{goal} [get]
func (h *Handler) DownloadTrainingProgram(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	goal := chi.URLParam(r, "goal")
	path, ok := h.catalog.Resolve(goal)
	if !ok {
		httputil.RespondErrorWithCode(w, "training program not found", httputil.CodeNotFound, http.StatusNotFound)
		return
	}
	if _, err := os.Stat(path); err != nil {
		logger.Warn("training program file missing", "goal", goal, "path", path)
		httputil.RespondErrorWithCode(w, "training program not found", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", goal))
	http.ServeFile(w, r, path)
}
