package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRateLimit_DisabledEnvs(t *testing.T) {
	for _, env := range []string{"", "test", "development"} {
		t.Run("env "+env, func(t *testing.T) {
			t.Setenv("APP_ENV", env)

			// A nil client must not matter when the limiter is off.
			ok, err := CheckRateLimit(context.Background(), nil, "login", "1.2.3.4", 1, time.Minute)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestCheckRateLimit_EnforcesLimit(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := CheckRateLimit(ctx, rdb, "register", "1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := CheckRateLimit(ctx, rdb, "register", "1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// A different caller has its own window.
	ok, err = CheckRateLimit(ctx, rdb, "register", "5.6.7.8", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// The window expiring resets the count.
	mr.FastForward(2 * time.Minute)
	ok, err = CheckRateLimit(ctx, rdb, "register", "1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckRateLimit_NilClientInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := CheckRateLimit(context.Background(), nil, "login", "1.2.3.4", 1, time.Minute)
	assert.Error(t, err)
}
