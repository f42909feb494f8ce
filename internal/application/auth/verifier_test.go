package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyeglobal/auth-api/internal/domain"
	"github.com/voyeglobal/auth-api/internal/infrastructure/credstore"
	"github.com/voyeglobal/auth-api/internal/logging"
	"github.com/voyeglobal/auth-api/internal/pkg/identifier"
)

func newVerifierFixture(t *testing.T) (*Verifier, credstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := credstore.NewRedisStore(client)
	return NewVerifier(store, logging.Discard()), store, mr
}

func putPending(t *testing.T, store credstore.Store, ident, code string) {
	t.Helper()
	now := time.Now().UTC()
	err := store.Put(context.Background(), credstore.Key(domain.NamespaceOTP, ident), domain.PendingOTP{
		Identifier: ident,
		Code:       code,
		CreatedAt:  now,
		ExpiresAt:  now.Add(domain.OTPTTL),
	}, domain.OTPTTL)
	require.NoError(t, err)
}

func TestVerifySuccessConsumesCode(t *testing.T) {
	v, store, _ := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")
	putPending(t, store, ident.Raw, "123456")

	res, err := v.Verify(context.Background(), ident, "123456")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifySuccess, res.Status)

	// The code is single-use: a replay sees nothing pending.
	res, err = v.Verify(context.Background(), ident, "123456")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyExpired, res.Status)
}

func TestVerifyAbsentCode(t *testing.T) {
	v, store, _ := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")

	res, err := v.Verify(context.Background(), ident, "123456")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyExpired, res.Status)

	// An absent code must not consume an attempt.
	var attempts int64
	err = store.Get(context.Background(), credstore.Key(domain.NamespaceAttempts, ident.Raw), &attempts)
	assert.ErrorIs(t, err, credstore.ErrMiss)
}

func TestVerifyExpiredCode(t *testing.T) {
	v, store, mr := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")
	putPending(t, store, ident.Raw, "123456")

	mr.FastForward(domain.OTPTTL + time.Second)

	res, err := v.Verify(context.Background(), ident, "123456")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyExpired, res.Status)
}

func TestVerifyMismatchCountsAttempts(t *testing.T) {
	v, store, _ := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")
	putPending(t, store, ident.Raw, "123456")

	res, err := v.Verify(context.Background(), ident, "654321")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyMismatch, res.Status)
	assert.Equal(t, 1, res.Attempts)

	res, err = v.Verify(context.Background(), ident, "654321")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyMismatch, res.Status)
	assert.Equal(t, 2, res.Attempts)
}

func TestVerifyLockoutOnThirdFailure(t *testing.T) {
	v, store, _ := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")
	putPending(t, store, ident.Raw, "123456")

	for i := 0; i < 2; i++ {
		res, err := v.Verify(context.Background(), ident, "000000")
		require.NoError(t, err)
		assert.Equal(t, domain.VerifyMismatch, res.Status)
	}

	res, err := v.Verify(context.Background(), ident, "000000")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyLockedOut, res.Status)
	assert.Equal(t, 3, res.Attempts)

	// Even the correct code is rejected while locked out, and the counter
	// short-circuits before the pending record is read.
	res, err = v.Verify(context.Background(), ident, "123456")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyLockedOut, res.Status)
}

func TestVerifyLockoutExpires(t *testing.T) {
	v, store, mr := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")
	putPending(t, store, ident.Raw, "123456")

	for i := 0; i < 3; i++ {
		_, err := v.Verify(context.Background(), ident, "000000")
		require.NoError(t, err)
	}

	// After the counter's TTL lapses the identifier is usable again.
	mr.FastForward(domain.OTPTTL + time.Second)
	putPending(t, store, ident.Raw, "222222")

	res, err := v.Verify(context.Background(), ident, "222222")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifySuccess, res.Status)
}

func TestVerifyLockedOutProbeRestartsWindow(t *testing.T) {
	v, store, mr := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")
	putPending(t, store, ident.Raw, "123456")

	for i := 0; i < 3; i++ {
		_, err := v.Verify(context.Background(), ident, "000000")
		require.NoError(t, err)
	}

	// Probe just before the window would lapse; the counter TTL restarts.
	mr.FastForward(domain.OTPTTL - time.Minute)
	res, err := v.Verify(context.Background(), ident, "000000")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyLockedOut, res.Status)

	// More than 10 minutes after the third failure, but within the window
	// restarted by the probe: still locked out.
	mr.FastForward(domain.OTPTTL - time.Minute)
	res, err = v.Verify(context.Background(), ident, "123456")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyLockedOut, res.Status)

	// Only sustained inactivity ends the lockout.
	mr.FastForward(domain.OTPTTL + time.Second)
	putPending(t, store, ident.Raw, "222222")
	res, err = v.Verify(context.Background(), ident, "222222")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifySuccess, res.Status)
}

func TestVerifyLeadingZeroSubmission(t *testing.T) {
	v, store, _ := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")
	putPending(t, store, ident.Raw, "123456")

	// "023456" must not match "123456" under any numeric coercion.
	res, err := v.Verify(context.Background(), ident, "023456")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyMismatch, res.Status)
}

func TestVerifyIdentifierCrossCheck(t *testing.T) {
	v, store, _ := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")

	// Stored record claims a different identifier than the one whose key
	// space it sits in. The cross-check rejects it.
	now := time.Now().UTC()
	err := store.Put(context.Background(), credstore.Key(domain.NamespaceOTP, ident.Raw), domain.PendingOTP{
		Identifier: "other@example.com",
		Code:       "123456",
		CreatedAt:  now,
		ExpiresAt:  now.Add(domain.OTPTTL),
	}, domain.OTPTTL)
	require.NoError(t, err)

	res, err := v.Verify(context.Background(), ident, "123456")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyMismatch, res.Status)
}

func TestVerifySuccessResetsCounter(t *testing.T) {
	v, store, _ := newVerifierFixture(t)
	ident := identifier.Classify("user@example.com")
	putPending(t, store, ident.Raw, "123456")

	_, err := v.Verify(context.Background(), ident, "000000")
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), ident, "000000")
	require.NoError(t, err)

	res, err := v.Verify(context.Background(), ident, "123456")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifySuccess, res.Status)

	// A fresh code starts with a clean attempt budget.
	putPending(t, store, ident.Raw, "777777")
	res, err = v.Verify(context.Background(), ident, "111111")
	require.NoError(t, err)
	assert.Equal(t, domain.VerifyMismatch, res.Status)
	assert.Equal(t, 1, res.Attempts)
}
