package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClient_SetGetDelete(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	mr.FastForward(2 * time.Minute)
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestClient_JSON(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	type profile struct {
		Email string `json:"email"`
	}
	require.NoError(t, c.SetJSON(ctx, "p", profile{Email: "a@b.c"}, time.Minute))

	var got profile
	assert.True(t, c.GetJSON(ctx, "p", &got))
	assert.Equal(t, "a@b.c", got.Email)

	assert.False(t, c.GetJSON(ctx, "missing", &got))
}

func TestClient_FailsSafeWhenRedisDown(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()
	mr.Close()

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
}

func TestClient_Nil(t *testing.T) {
	var c *Client
	ctx := context.Background()

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "k", nil, time.Second))
	assert.Error(t, c.Ping(ctx))
}

func TestClient_Strict(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	got, err := c.GetStrict(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.SetStrict(ctx, "k", []byte("v"), time.Minute))
	got, err = c.GetStrict(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.DeleteStrict(ctx, "k"))
	assert.False(t, mr.Exists("k"))

	mr.Close()
	_, err = c.GetStrict(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, c.SetStrict(ctx, "k", []byte("v"), time.Minute))
	assert.Error(t, c.DeleteStrict(ctx, "k"))
}

func TestClient_StrictNil(t *testing.T) {
	var c *Client
	ctx := context.Background()

	_, err := c.GetStrict(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, c.SetStrict(ctx, "k", nil, time.Second))
	assert.Error(t, c.DeleteStrict(ctx, "k"))
}
