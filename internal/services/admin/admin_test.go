package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/password"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
)

func newTestService(t *testing.T) (*Service, *jwt.MakerImpl) {
	t.Helper()
	hash, err := password.GetHash("s3cret-pass")
	require.NoError(t, err)
	maker := jwt.NewJWTMaker("jwt-secret", time.Hour)
	return NewService(hash, maker, sl.NewDiscardLogger()), maker
}

func TestLogin_Success(t *testing.T) {
	svc, maker := newTestService(t)

	token, expires, err := svc.Login(context.Background(), "s3cret-pass")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
	assert.Equal(t, Subject, claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	for _, p := range []string{"admin123", "", "s3cret-pass "} {
		_, _, err := svc.Login(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidCredentials, p)
	}
}

func TestLogin_Disabled(t *testing.T) {
	svc := NewService("", jwt.NewJWTMaker("k", time.Hour), sl.NewDiscardLogger())

	_, _, err := svc.Login(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestLogin_BrokenHash(t *testing.T) {
	svc := NewService("plain-text", jwt.NewJWTMaker("k", time.Hour), sl.NewDiscardLogger())

	_, _, err := svc.Login(context.Background(), "plain-text")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_CanceledContext(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Login(ctx, "s3cret-pass")
	assert.ErrorIs(t, err, context.Canceled)
}
