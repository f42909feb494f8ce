package domain

import "time"

// OTP policy. Codes are generated in [CodeMin, CodeMax], so a code never
// starts with a zero; comparison still uses the full 6-character string.
const (
	OTPCodeLength = 6
	OTPCodeMin    = 111111
	OTPCodeMax    = 999999

	// OTPTTL bounds both the pending code and the attempt counter.
	OTPTTL = 10 * time.Minute

	// OTPMaxAttempts failed comparisons within one TTL window lock the
	// identifier out until the counter expires.
	OTPMaxAttempts = 3
)

// Credential-store key namespaces.
const (
	NamespaceOTP      = "otp"
	NamespaceAttempts = "otp_attempts"
)

// PendingOTP is the single active code for an identifier. A new request
// overwrites it; successful verification or TTL expiry destroys it.
type PendingOTP struct {
	Identifier string    `json:"identifier"`
	Code       string    `json:"code"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// VerifyStatus is the typed outcome of a verification attempt.
type VerifyStatus string

const (
	VerifySuccess           VerifyStatus = "success"
	VerifyInvalidIdentifier VerifyStatus = "invalid_identifier"
	VerifyUserNotFound      VerifyStatus = "user_not_found"
	VerifyInvalidCode       VerifyStatus = "invalid_code"
	VerifyExpired           VerifyStatus = "expired"
	VerifyMismatch          VerifyStatus = "mismatch"
	VerifyLockedOut         VerifyStatus = "locked_out"
	VerifyLoginFailed       VerifyStatus = "login_failed"
)

// VerifyResult carries the outcome of the verifier policy. Attempts is only
// meaningful for VerifyMismatch.
type VerifyResult struct {
	Status   VerifyStatus
	Attempts int
}
