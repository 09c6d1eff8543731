package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService([]byte("test-signing-secret"))
	require.NoError(t, err)

	token, err := svc.CreateToken("alice", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestJWTService_Expired(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService([]byte("test-signing-secret"))
	require.NoError(t, err)

	token, err := svc.CreateToken("alice", -time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTService([]byte("right-secret"))
	require.NoError(t, err)
	verifier, err := NewJWTService([]byte("wrong-secret"))
	require.NoError(t, err)

	token, err := issuer.CreateToken("alice", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Malformed(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService([]byte("test-signing-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_MissingSubject(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService([]byte("test-signing-secret"))
	require.NoError(t, err)

	token, err := svc.CreateToken("", time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrSubjectMissing)
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(nil)
	assert.Error(t, err)
}
