package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdrdragon/internal/cache"
)

func newTestTokenStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return NewTokenStore(client), mr
}

func TestTokenStore_RefreshLifecycle(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.StoreRefreshToken(ctx, "tid", userID, time.Hour))
	assert.True(t, mr.Exists(refreshTokenKeyPrefix+"tid"))

	got, err := store.GetRefreshToken(ctx, "tid")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	require.NoError(t, store.DeleteRefreshToken(ctx, "tid"))
	_, err = store.GetRefreshToken(ctx, "tid")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_RefreshExpires(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, "tid", uuid.New(), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.GetRefreshToken(ctx, "tid")
	assert.Error(t, err)
}

func TestTokenStore_Blacklist(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()

	blacklisted, err := store.IsAccessTokenBlacklisted(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, store.BlacklistAccessToken(ctx, "jti", time.Minute))
	blacklisted, err = store.IsAccessTokenBlacklisted(ctx, "jti")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	mr.FastForward(2 * time.Minute)
	blacklisted, err = store.IsAccessTokenBlacklisted(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestTokenStore_BlacklistSkipsExpired(t *testing.T) {
	store, mr := newTestTokenStore(t)

	require.NoError(t, store.BlacklistAccessToken(context.Background(), "jti", 0))
	assert.False(t, mr.Exists(accessTokenKeyPrefix+"jti"))
}

func TestTokenStore_RedisDown(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()
	mr.Close()

	assert.Error(t, store.StoreRefreshToken(ctx, "tid", uuid.New(), time.Hour))
	assert.Error(t, store.DeleteRefreshToken(ctx, "tid"))
	assert.Error(t, store.BlacklistAccessToken(ctx, "jti-1", time.Minute))

	_, err := store.GetRefreshToken(ctx, "tid")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRefreshTokenNotFound)

	blacklisted, err := store.IsAccessTokenBlacklisted(ctx, "jti-1")
	assert.Error(t, err)
	assert.False(t, blacklisted)
}
