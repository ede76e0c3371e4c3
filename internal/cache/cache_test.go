package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedPost struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var dest cachedPost
	found, err := GetJSON(ctx, PostKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, PostKey(1), cachedPost{ID: 1, Text: "hello"}, PostTTL))

	found, err = GetJSON(ctx, PostKey(1), &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedPost{ID: 1, Text: "hello"}, dest)
}

func TestGetJSON_CorruptPayload(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(PostKey(2), "not json"))

	var dest cachedPost
	found, err := GetJSON(ctx, PostKey(2), &dest)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			calls++
			*dest = cachedPost{ID: 7, Text: "fetched"}
			return nil
		}
	}

	var first cachedPost
	require.NoError(t, Aside(ctx, PostKey(7), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", first.Text)

	// Second read is served from the cache.
	var second cachedPost
	require.NoError(t, Aside(ctx, PostKey(7), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	wantErr := errors.New("store down")
	var dest cachedPost
	err := Aside(ctx, PostKey(8), &dest, PostTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	found, err := GetJSON(ctx, PostKey(8), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProfileHandleKey("johndoe"), cachedPost{Text: "p"}, ProfileTTL))
	require.NoError(t, SetJSON(ctx, ProfilesListKey(), []cachedPost{}, ListTTL))

	InvalidateProfile(ctx, "johndoe")

	var dest any
	found, err := GetJSON(ctx, ProfileHandleKey("johndoe"), &dest)
	require.NoError(t, err)
	assert.False(t, found)
	found, err = GetJSON(ctx, ProfilesListKey(), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientIsInert(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var dest cachedPost
	found, err := GetJSON(ctx, PostKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, SetJSON(ctx, PostKey(1), dest, time.Minute))
	Invalidate(ctx, PostKey(1))

	// Aside always falls through to fetch.
	called := false
	require.NoError(t, Aside(ctx, PostKey(1), &dest, time.Minute, func() error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "post:42", PostKey(42))
	assert.Equal(t, "profile:handle:johndoe", ProfileHandleKey("johndoe"))
	assert.Equal(t, "profiles:all", ProfilesListKey())
	assert.Equal(t, "post", keyPrefix("post:42"))
	assert.Equal(t, "health", keyPrefix("health"))
}
