package service

import (
	"context"
	"testing"
	"time"

	"online-health-consultation/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisTokenStore(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisTokenStore(client)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, userID, jwt.AccessToken, "jti-1", time.Minute))
	require.NoError(t, store.Save(ctx, userID, jwt.RefreshToken, "jti-2", time.Hour))

	ok, err := store.Exists(ctx, userID, jwt.AccessToken, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, userID, jwt.RefreshToken, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok, "token types do not share keys")

	ok, err = store.Exists(ctx, uuid.New(), jwt.AccessToken, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok, "tokens are bound to their user")

	require.NoError(t, store.Revoke(ctx, userID, jwt.AccessToken, "jti-1"))
	ok, err = store.Exists(ctx, userID, jwt.AccessToken, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(time.Hour + time.Second)
	ok, err = store.Exists(ctx, userID, jwt.RefreshToken, "jti-2")
	require.NoError(t, err)
	assert.False(t, ok, "tokens expire with their ttl")
}
