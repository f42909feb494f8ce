package credstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

type record struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

func TestPutGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := record{Identifier: "user@example.com", Code: "123456"}
	require.NoError(t, store.Put(ctx, "otp:abc", in, time.Minute))

	var out record
	require.NoError(t, store.Get(ctx, "otp:abc", &out))
	assert.Equal(t, in, out)
}

func TestGet_AbsentKey_ReturnsMiss(t *testing.T) {
	store, _ := newTestStore(t)

	var out record
	err := store.Get(context.Background(), "otp:nothing", &out)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestGet_AfterTTL_ReturnsMiss(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "otp:abc", record{Code: "123456"}, 10*time.Minute))

	mr.FastForward(10*time.Minute + time.Second)

	var out record
	err := store.Get(ctx, "otp:abc", &out)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestPut_OverwritesExistingValue(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "otp:abc", record{Code: "111111"}, time.Minute))
	require.NoError(t, store.Put(ctx, "otp:abc", record{Code: "999999"}, time.Minute))

	var out record
	require.NoError(t, store.Get(ctx, "otp:abc", &out))
	assert.Equal(t, "999999", out.Code)
}

func TestDelete_RemovesKey(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "otp:abc", record{Code: "123456"}, time.Minute))
	require.NoError(t, store.Delete(ctx, "otp:abc"))

	var out record
	assert.ErrorIs(t, store.Get(ctx, "otp:abc", &out), ErrMiss)
}

func TestIncrement_CountsUpAndRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	n, err := store.Increment(ctx, "otp_attempts:abc", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mr.FastForward(9 * time.Minute)

	n, err = store.Increment(ctx, "otp_attempts:abc", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// The second increment restarted the window.
	mr.FastForward(9 * time.Minute)
	n, err = store.Increment(ctx, "otp_attempts:abc", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestIncrement_ExpiredCounterStartsOver(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Increment(ctx, "otp_attempts:abc", 10*time.Minute)
	require.NoError(t, err)

	mr.FastForward(10*time.Minute + time.Second)

	n, err := store.Increment(ctx, "otp_attempts:abc", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestKey_HashesIdentifier(t *testing.T) {
	k := Key("otp", "user@example.com")
	assert.NotContains(t, k, "user@example.com")
	assert.Regexp(t, `^otp:[0-9a-f]{64}$`, k)
	assert.Equal(t, k, Key("otp", "user@example.com"))
	assert.NotEqual(t, k, Key("otp_attempts", "user@example.com"))
}
