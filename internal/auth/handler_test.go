package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofir-cohen/fitlife-api/internal/logging"
)

func newTestHandler(t *testing.T, isDevelopment bool) *Handler {
	t.Helper()

	svc, _, _ := newTestService(t)
	return NewHandler(svc, logging.NewLogger(true), isDevelopment)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandler_Register(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, false)

	rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Username: "alice",
		Password: "s3cret-password",
		Name:     "Alice",
		Age:      28,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)

	// The password hash never leaves the server
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestHandler_Register_Conflict(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, false)

	req := RegisterRequest{Username: "alice", Password: "s3cret-password", Name: "Alice", Age: 28}
	rec := postJSON(t, h.Register, "/auth/register", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Register, "/auth/register", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_Register_ShortPassword(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, false)

	rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Username: "alice",
		Password: "short",
		Name:     "Alice",
		Age:      28,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, false)

	rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Username: "alice", Password: "s3cret-password", Name: "Alice", Age: 28,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/auth/login", LoginRequest{Username: "alice", Password: "s3cret-password"})
	require.Equal(t, http.StatusOK, rec.Code)

	var token AccessToken
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestHandler_Login_UniformResponse(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, false)

	rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Username: "alice", Password: "s3cret-password", Name: "Alice", Age: 28,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	unknown := postJSON(t, h.Login, "/auth/login", LoginRequest{Username: "nobody", Password: "s3cret-password"})
	wrong := postJSON(t, h.Login, "/auth/login", LoginRequest{Username: "alice", Password: "wrong-password"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestHandler_PasswordReset_DevModeExposesToken(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, true)

	rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Username: "alice", Password: "s3cret-password", Name: "Alice", Age: 28,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.RequestPasswordReset, "/auth/password-reset-request", ResetRequestBody{Username: "alice"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	token := resp["reset_token"]
	require.NotEmpty(t, token)

	rec = postJSON(t, h.ConfirmPasswordReset, "/auth/password-reset-confirm", ResetConfirmBody{
		Username:    "alice",
		Token:       token,
		NewPassword: "brand-new-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Second confirm with the same token is rejected
	rec = postJSON(t, h.ConfirmPasswordReset, "/auth/password-reset-confirm", ResetConfirmBody{
		Username:    "alice",
		Token:       token,
		NewPassword: "yet-another-password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Login, "/auth/login", LoginRequest{Username: "alice", Password: "brand-new-password"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_PasswordReset_ProdModeHidesToken(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, false)

	rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
		Username: "alice", Password: "s3cret-password", Name: "Alice", Age: 28,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.RequestPasswordReset, "/auth/password-reset-request", ResetRequestBody{Username: "alice"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	_, exposed := resp["reset_token"]
	assert.False(t, exposed)
}

func TestHandler_PasswordReset_UnknownUser(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, false)

	rec := postJSON(t, h.RequestPasswordReset, "/auth/password-reset-request", ResetRequestBody{Username: "nobody"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
