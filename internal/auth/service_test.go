package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofir-cohen/fitlife-api/internal/logging"
	"github.com/ofir-cohen/fitlife-api/internal/user"
)

// fakeUserStore is an in-memory UserStore keyed by username
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*user.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[params.Username]; exists {
		return nil, user.ErrDuplicateUsername
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
		Name:         params.Name,
		Age:          params.Age,
		Gender:       params.Gender,
		Height:       params.Height,
		Weight:       params.Weight,
		Email:        params.Email,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[params.Username] = u
	return u, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

// fakeResetStore is an in-memory ResetTokenStore that mimics the
// single-winner consume semantics of the SQL implementation
type fakeResetStore struct {
	mu     sync.Mutex
	tokens map[string]*ResetToken
	users  *fakeUserStore
}

func newFakeResetStore(users *fakeUserStore) *fakeResetStore {
	return &fakeResetStore{tokens: make(map[string]*ResetToken), users: users}
}

func (f *fakeResetStore) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*ResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rt := &ResetToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	f.tokens[token] = rt
	return rt, nil
}

func (f *fakeResetStore) GetByToken(ctx context.Context, token string) (*ResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rt, ok := f.tokens[token]
	if !ok {
		return nil, ErrResetTokenInvalid
	}
	copied := *rt
	return &copied, nil
}

func (f *fakeResetStore) ConsumeAndSetPassword(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rt := range f.tokens {
		if rt.ID != tokenID {
			continue
		}
		if rt.IsUsed {
			return ErrResetTokenUsed
		}
		rt.IsUsed = true

		f.users.mu.Lock()
		defer f.users.mu.Unlock()
		for _, u := range f.users.users {
			if u.ID == userID {
				u.PasswordHash = passwordHash
				return nil
			}
		}
		return user.ErrNotFound
	}
	return ErrResetTokenUsed
}

func newTestService(t *testing.T) (*Service, *fakeUserStore, *fakeResetStore) {
	t.Helper()

	users := newFakeUserStore()
	resets := newFakeResetStore(users)

	tokenService, err := NewJWTService([]byte("test-signing-secret"))
	require.NoError(t, err)

	svc := NewService(
		users,
		resets,
		tokenService,
		nil,
		logging.NewLogger(true),
		30*time.Minute,
		15*time.Minute,
	)
	return svc, users, resets
}

func registerTestUser(t *testing.T, svc *Service, username, password string) *user.User {
	t.Helper()

	u, err := svc.Register(context.Background(), RegisterParams{
		Username: username,
		Password: password,
		Name:     "Test User",
		Age:      30,
	})
	require.NoError(t, err)
	return u
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	svc, users, _ := newTestService(t)

	u := registerTestUser(t, svc, "alice", "s3cret-password")
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "s3cret-password", u.PasswordHash)

	stored, err := users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, CheckPassword("s3cret-password", stored.PasswordHash))
}

func TestService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterParams{Password: "s3cret-password"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register(context.Background(), RegisterParams{Username: "alice"})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Register(context.Background(), RegisterParams{Username: "alice", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	registerTestUser(t, svc, "alice", "s3cret-password")

	_, err := svc.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "another-password",
	})
	assert.ErrorIs(t, err, user.ErrDuplicateUsername)
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	registerTestUser(t, svc, "alice", "s3cret-password")

	token, err := svc.Login(context.Background(), "alice", "s3cret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, int64(1800), token.ExpiresIn)
}

func TestService_Login_UniformError(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	registerTestUser(t, svc, "alice", "s3cret-password")

	_, unknownErr := svc.Login(context.Background(), "nobody", "s3cret-password")
	_, wrongErr := svc.Login(context.Background(), "alice", "wrong-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestService_CurrentUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	registerTestUser(t, svc, "alice", "s3cret-password")

	token, err := svc.Login(context.Background(), "alice", "s3cret-password")
	require.NoError(t, err)

	u, err := svc.CurrentUser(context.Background(), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.CurrentUser(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_PasswordReset_Flow(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	registerTestUser(t, svc, "alice", "s3cret-password")

	reset, err := svc.RequestPasswordReset(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, reset.Token)

	err = svc.ConfirmPasswordReset(context.Background(), "alice", reset.Token, "brand-new-password")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "s3cret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "alice", "brand-new-password")
	assert.NoError(t, err)
}

func TestService_PasswordReset_SingleUse(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	registerTestUser(t, svc, "alice", "s3cret-password")

	reset, err := svc.RequestPasswordReset(context.Background(), "alice")
	require.NoError(t, err)

	err = svc.ConfirmPasswordReset(context.Background(), "alice", reset.Token, "first-new-password")
	require.NoError(t, err)

	err = svc.ConfirmPasswordReset(context.Background(), "alice", reset.Token, "second-new-password")
	assert.ErrorIs(t, err, ErrResetTokenUsed)

	// The first reset still holds
	_, err = svc.Login(context.Background(), "alice", "first-new-password")
	assert.NoError(t, err)
}

func TestService_PasswordReset_Expired(t *testing.T) {
	t.Parallel()

	svc, _, resets := newTestService(t)
	u := registerTestUser(t, svc, "alice", "s3cret-password")

	_, err := resets.Create(context.Background(), u.ID, "expired-token", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	err = svc.ConfirmPasswordReset(context.Background(), "alice", "expired-token", "brand-new-password")
	assert.ErrorIs(t, err, ErrResetTokenExpired)

	_, err = svc.Login(context.Background(), "alice", "s3cret-password")
	assert.NoError(t, err)
}

func TestService_PasswordReset_WrongUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	registerTestUser(t, svc, "alice", "s3cret-password")
	registerTestUser(t, svc, "mallory", "m4llory-password")

	reset, err := svc.RequestPasswordReset(context.Background(), "alice")
	require.NoError(t, err)

	err = svc.ConfirmPasswordReset(context.Background(), "mallory", reset.Token, "hijacked-password")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestService_PasswordReset_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.RequestPasswordReset(context.Background(), "nobody")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestService_PasswordReset_UnknownToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	registerTestUser(t, svc, "alice", "s3cret-password")

	err := svc.ConfirmPasswordReset(context.Background(), "alice", "no-such-token", "brand-new-password")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestService_PasswordReset_ShortPassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	registerTestUser(t, svc, "alice", "s3cret-password")

	reset, err := svc.RequestPasswordReset(context.Background(), "alice")
	require.NoError(t, err)

	err = svc.ConfirmPasswordReset(context.Background(), "alice", reset.Token, "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	// Token remains usable after the rejected attempt
	err = svc.ConfirmPasswordReset(context.Background(), "alice", reset.Token, "brand-new-password")
	assert.NoError(t, err)
}
