package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/voyeglobal/auth-api/internal/domain"
	"github.com/voyeglobal/auth-api/internal/infrastructure/credstore"
	"github.com/voyeglobal/auth-api/internal/pkg/identifier"
)

// Verifier applies the verification and lockout policy over the credential
// store. It assumes the identifier format and code format were already
// checked by the caller.
type Verifier struct {
	store  credstore.Store
	logger *slog.Logger
}

func NewVerifier(store credstore.Store, logger *slog.Logger) *Verifier {
	return &Verifier{store: store, logger: logger}
}

// Verify compares the submitted code against the pending one.
//
// Ordering is deliberate: the attempt counter short-circuits first so a
// locked-out identifier never reaches the comparison, and an absent or
// TTL-expired pending code never consumes an attempt.
func (v *Verifier) Verify(ctx context.Context, ident identifier.Identifier, code string) (domain.VerifyResult, error) {
	otpKey := credstore.Key(domain.NamespaceOTP, ident.Raw)
	attemptsKey := credstore.Key(domain.NamespaceAttempts, ident.Raw)

	var attempts int64
	if err := v.store.Get(ctx, attemptsKey, &attempts); err != nil && !errors.Is(err, credstore.ErrMiss) {
		return domain.VerifyResult{}, err
	}
	if attempts >= domain.OTPMaxAttempts {
		// Probing while locked out restarts the lockout window; only
		// inactivity ends it.
		n, err := v.store.Increment(ctx, attemptsKey, domain.OTPTTL)
		if err != nil {
			return domain.VerifyResult{}, err
		}
		return domain.VerifyResult{Status: domain.VerifyLockedOut, Attempts: int(n)}, nil
	}

	var pending domain.PendingOTP
	if err := v.store.Get(ctx, otpKey, &pending); err != nil {
		if errors.Is(err, credstore.ErrMiss) {
			return domain.VerifyResult{Status: domain.VerifyExpired}, nil
		}
		return domain.VerifyResult{}, err
	}

	// Full 6-character string comparison (leading zeros significant) plus
	// an identifier cross-check against the stored record.
	if pending.Code == code && pending.Identifier == ident.Raw {
		if err := v.store.Delete(ctx, otpKey); err != nil {
			v.logger.Warn("failed to delete pending otp", "err", err)
		}
		if err := v.store.Delete(ctx, attemptsKey); err != nil {
			v.logger.Warn("failed to delete attempt counter", "err", err)
		}
		return domain.VerifyResult{Status: domain.VerifySuccess}, nil
	}

	n, err := v.store.Increment(ctx, attemptsKey, domain.OTPTTL)
	if err != nil {
		return domain.VerifyResult{}, err
	}
	if n >= domain.OTPMaxAttempts {
		return domain.VerifyResult{Status: domain.VerifyLockedOut, Attempts: int(n)}, nil
	}
	return domain.VerifyResult{Status: domain.VerifyMismatch, Attempts: int(n)}, nil
}
