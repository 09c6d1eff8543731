package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ofir-cohen/fitlife-api/internal/httputil"
	"github.com/ofir-cohen/fitlife-api/internal/logging"
	"github.com/ofir-cohen/fitlife-api/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service       *Service
	logger        *logging.Logger
	isDevelopment bool
}

func NewHandler(service *Service, logger *logging.Logger, isDevelopment bool) *Handler {
	return &Handler{
		service:       service,
		logger:        logger,
		isDevelopment: isDevelopment,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Gender   *string  `json:"gender,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Email    *string  `json:"email,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetRequestBody represents the password reset request body
type ResetRequestBody struct {
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
}

// ResetConfirmBody represents the password reset confirmation body
type ResetConfirmBody struct {
	Username    string `json:"username"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// UserResponse is the public-safe projection of a user
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Age      int       `json:"age"`
	Gender   *string   `json:"gender,omitempty"`
	Height   *float64  `json:"height,omitempty"`
	Weight   *float64  `json:"weight,omitempty"`
	Email    *string   `json:"email,omitempty"`
}

// RegisterResponse represents the registration response
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Age:      u.Age,
		Gender:   u.Gender,
		Height:   u.Height,
		Weight:   u.Weight,
		Email:    u.Email,
	}
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new user account. The response never includes the password hash.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration fields"
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      409 {object} httputil.ErrorResponse "Username already taken"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"username": req.Username})

	newUser, err := h.service.Register(r.Context(), RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Age:      req.Age,
		Gender:   req.Gender,
		Height:   req.Height,
		Weight:   req.Weight,
		Email:    req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateUsername):
			logger.Warn("registration failed: username taken")
			respondError(w, "username already taken", httputil.CodeUsernameTaken, http.StatusConflict)
		case errors.Is(err, user.ErrDuplicateEmail):
			logger.Warn("registration failed: email already exists")
			respondError(w, "email already exists", httputil.CodeValidation, http.StatusConflict)
		case errors.Is(err, ErrUsernameRequired), errors.Is(err, ErrPasswordRequired):
			logger.Warn("registration failed: validation error", "error", err.Error())
			respondError(w, err.Error(), httputil.CodeValidation, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			logger.Warn("registration failed: password too short")
			respondError(w, err.Error(), httputil.CodePasswordTooShort, http.StatusBadRequest)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			respondError(w, "failed to register user", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user registered successfully", "user_id", newUser.ID)

	respondJSON(w, RegisterResponse{
		Message: "User registered successfully",
		User:    toUserResponse(newUser),
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate a user and receive a bearer access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AccessToken
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"username": req.Username})

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// Same response for unknown user and wrong password
			logger.Warn("login failed: invalid credentials")
			respondError(w, "invalid username or password", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		respondError(w, "failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in successfully")

	respondJSON(w, token, http.StatusOK)
}

// Me returns the authenticated user
// @Summary      Get current user
// @Description  Return the user the bearer token was issued to
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UserResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	subject, ok := GetSubjectFromContext(r.Context())
	if !ok {
		respondUnauthenticated(w)
		return
	}

	u, err := h.service.UserBySubject(r.Context(), subject)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			logger.Warn("token subject no longer resolves to a user", "subject", subject)
			respondUnauthenticated(w)
			return
		}
		logger.Error("failed to load current user", "error", err.Error())
		respondError(w, "failed to load current user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	respondJSON(w, toUserResponse(u), http.StatusOK)
}

// RequestPasswordReset handles password reset requests
// @Summary      Request password reset
// @Description  Create a single-use reset token for the user and email it when an address is on file
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ResetRequestBody true "Username"
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /auth/password-reset-request [post]
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ResetRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid reset request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	resetToken, err := h.service.RequestPasswordReset(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Warn("reset request failed: user not found", "username", req.Username)
			respondError(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("reset request failed: internal error", "error", err.Error())
		respondError(w, "failed to request password reset", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("password reset requested", "username", req.Username)

	response := map[string]string{
		"message": "Password reset token created",
	}
	// Without a mail server there is no other way to obtain the token
	if h.isDevelopment {
		response["reset_token"] = resetToken.Token
	}

	respondJSON(w, response, http.StatusOK)
}

// ConfirmPasswordReset handles password reset confirmation
// @Summary      Confirm password reset
// @Description  Consume a reset token and set a new password. A used or expired token never authorizes a reset.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ResetConfirmBody true "Username, reset token and new password"
// @Success      200 {object} map[string]string
// @Failure      400 {object} httputil.ErrorResponse "Invalid, expired or used token; password too short"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /auth/password-reset-confirm [post]
func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ResetConfirmBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid reset confirm body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	err := h.service.ConfirmPasswordReset(r.Context(), req.Username, req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			logger.Warn("reset confirm failed: user not found", "username", req.Username)
			respondError(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
		case errors.Is(err, ErrPasswordRequired):
			logger.Warn("reset confirm failed: password required")
			respondError(w, err.Error(), httputil.CodeValidation, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			logger.Warn("reset confirm failed: password too short")
			respondError(w, err.Error(), httputil.CodePasswordTooShort, http.StatusBadRequest)
		case errors.Is(err, ErrResetTokenInvalid):
			logger.Warn("reset confirm failed: invalid token")
			respondError(w, "invalid reset token", httputil.CodeResetTokenInvalid, http.StatusBadRequest)
		case errors.Is(err, ErrResetTokenExpired):
			logger.Warn("reset confirm failed: token expired")
			respondError(w, "reset token has expired", httputil.CodeResetTokenExpired, http.StatusBadRequest)
		case errors.Is(err, ErrResetTokenUsed):
			logger.Warn("reset confirm failed: token already used")
			respondError(w, "reset token already used", httputil.CodeResetTokenUsed, http.StatusBadRequest)
		default:
			logger.Error("reset confirm failed: internal error", "error", err.Error())
			respondError(w, "failed to reset password", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("password reset successfully", "username", req.Username)

	respondJSON(w, map[string]string{
		"status":  "success",
		"message": "Password reset successful",
	}, http.StatusOK)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	httputil.RespondJSON(w, data, statusCode)
}

// respondError sends an error response with a machine-readable code
func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}
