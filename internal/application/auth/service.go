package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/voyeglobal/auth-api/internal/domain"
	"github.com/voyeglobal/auth-api/internal/infrastructure/commerce"
	"github.com/voyeglobal/auth-api/internal/infrastructure/credstore"
	"github.com/voyeglobal/auth-api/internal/infrastructure/smtp"
	"github.com/voyeglobal/auth-api/internal/infrastructure/sns"
	"github.com/voyeglobal/auth-api/internal/pkg/identifier"
)

// UserStore is the narrow read surface of the external user store.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// TokenIssuer mints signed access tokens.
type TokenIssuer interface {
	Sign(userID string) (string, error)
}

// SessionEstablisher turns a verified user id into a request-scoped session.
type SessionEstablisher interface {
	Establish(ctx context.Context, userID string) (*domain.AuthenticatedSession, error)
}

// SendStatus is the typed outcome of a code request.
type SendStatus string

const (
	SendOK                SendStatus = "ok"
	SendInvalidIdentifier SendStatus = "invalid_identifier"
	SendUserNotFound      SendStatus = "user_not_found"
	SendDispatchFailed    SendStatus = "dispatch_failed"
)

// SendResult reports a code request outcome. Kind tells the caller which
// channel the identifier classified as.
type SendResult struct {
	Status SendStatus
	Kind   identifier.Kind
}

// VerifyCodeRequest carries all verification inputs explicitly; there is no
// ambient request state.
type VerifyCodeRequest struct {
	Identifier string
	Code       string
	Redirect   string
}

// VerifyCodeResult is the orchestrated verification outcome. Token, ReturnURL
// and Session are set only on success.
type VerifyCodeResult struct {
	Result    domain.VerifyResult
	Token     string
	ReturnURL string
	Session   *domain.AuthenticatedSession
}

// Service exposes the three OTP login operations.
type Service interface {
	RequestCode(ctx context.Context, rawIdentifier string) (SendResult, error)
	ResendCode(ctx context.Context, rawIdentifier string) (SendResult, error)
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (VerifyCodeResult, error)
}

type service struct {
	verifier *Verifier
	store    credstore.Store
	users    UserStore
	mailer   smtp.Mailer
	sms      sns.SMSSender
	issuer   TokenIssuer
	sessions SessionEstablisher
	commerce commerce.Gateway
	logger   *slog.Logger
	siteName string
}

type ServiceDeps struct {
	Store    credstore.Store
	Users    UserStore
	Mailer   smtp.Mailer
	SMS      sns.SMSSender
	Issuer   TokenIssuer
	Sessions SessionEstablisher
	Commerce commerce.Gateway
	Logger   *slog.Logger
	SiteName string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verifier: NewVerifier(deps.Store, deps.Logger),
		store:    deps.Store,
		users:    deps.Users,
		mailer:   deps.Mailer,
		sms:      deps.SMS,
		issuer:   deps.Issuer,
		sessions: deps.Sessions,
		commerce: deps.Commerce,
		logger:   deps.Logger,
		siteName: deps.SiteName,
	}
}

func (s *service) RequestCode(ctx context.Context, rawIdentifier string) (SendResult, error) {
	ident := identifier.Classify(rawIdentifier)
	if !ident.Valid() {
		return SendResult{Status: SendInvalidIdentifier, Kind: ident.Kind}, nil
	}

	if _, err := s.lookupUser(ctx, ident); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return SendResult{Status: SendUserNotFound, Kind: ident.Kind}, nil
		}
		return SendResult{}, errors.Join(domain.ErrInfrastructure, err)
	}

	code, err := generateCode()
	if err != nil {
		return SendResult{}, err
	}

	now := time.Now().UTC()
	pending := domain.PendingOTP{
		Identifier: ident.Raw,
		Code:       code,
		CreatedAt:  now,
		ExpiresAt:  now.Add(domain.OTPTTL),
	}
	// Overwrites any prior pending code, invalidating it immediately.
	if err := s.store.Put(ctx, credstore.Key(domain.NamespaceOTP, ident.Raw), pending, domain.OTPTTL); err != nil {
		return SendResult{}, err
	}

	if err := s.dispatch(ctx, ident, code); err != nil {
		// The pending code is already committed at this point; the user
		// holds a valid code they may never have received.
		s.logger.Warn("otp dispatch failed", "kind", string(ident.Kind), "err", err)
		return SendResult{Status: SendDispatchFailed, Kind: ident.Kind}, nil
	}

	return SendResult{Status: SendOK, Kind: ident.Kind}, nil
}

// ResendCode is contractually identical to RequestCode: same overwrite
// semantics, no cooldown.
func (s *service) ResendCode(ctx context.Context, rawIdentifier string) (SendResult, error) {
	return s.RequestCode(ctx, rawIdentifier)
}

func (s *service) VerifyCode(ctx context.Context, req VerifyCodeRequest) (VerifyCodeResult, error) {
	ident := identifier.Classify(req.Identifier)
	if !ident.Valid() {
		return verifyOutcome(domain.VerifyInvalidIdentifier), nil
	}

	user, err := s.lookupUser(ctx, ident)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return verifyOutcome(domain.VerifyUserNotFound), nil
		}
		return VerifyCodeResult{}, errors.Join(domain.ErrInfrastructure, err)
	}

	if !validCodeFormat(req.Code) {
		return verifyOutcome(domain.VerifyInvalidCode), nil
	}

	res, err := s.verifier.Verify(ctx, ident, req.Code)
	if err != nil {
		return VerifyCodeResult{}, err
	}
	if res.Status != domain.VerifySuccess {
		return VerifyCodeResult{Result: res}, nil
	}

	sess, err := s.sessions.Establish(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// User record vanished between verification and login.
			return verifyOutcome(domain.VerifyLoginFailed), nil
		}
		return VerifyCodeResult{}, err
	}

	token, err := s.issuer.Sign(user.UserID)
	if err != nil {
		return VerifyCodeResult{}, fmt.Errorf("sign access token: %w", err)
	}

	return VerifyCodeResult{
		Result:    res,
		Token:     token,
		ReturnURL: s.returnURL(ctx, req.Redirect),
		Session:   sess,
	}, nil
}

func (s *service) lookupUser(ctx context.Context, ident identifier.Identifier) (*domain.User, error) {
	if ident.Kind == identifier.Phone {
		return s.users.GetByPhone(ctx, ident.Raw)
	}
	return s.users.GetByEmail(ctx, ident.Raw)
}

func (s *service) dispatch(ctx context.Context, ident identifier.Identifier, code string) error {
	if ident.Kind == identifier.Phone {
		if s.sms == nil {
			return errors.New("sms sender not configured")
		}
		return s.sms.SendSMS(ctx, ident.Raw, "Your verification code: "+code)
	}
	subject := s.siteName + " OTP (One Time Password)"
	body := "Hi, Please use the following OTP (One Time Password) below:\r\n\r\n" + code
	return s.mailer.SendEmail(ident.Raw, subject, body)
}

// returnURL prefers the caller-supplied redirect, then the storefront account
// page. An unavailable storefront is expected and leaves the URL empty.
func (s *service) returnURL(ctx context.Context, redirect string) string {
	if redirect != "" {
		return redirect
	}
	url, err := s.commerce.AccountPageURL(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrFeatureUnavailable) {
			s.logger.Warn("account page lookup failed", "err", err)
		}
		return ""
	}
	return url
}

func verifyOutcome(status domain.VerifyStatus) VerifyCodeResult {
	return VerifyCodeResult{Result: domain.VerifyResult{Status: status}}
}

// generateCode draws a uniform random code in [111111, 999999]. The lower
// bound guarantees no code ever starts with a zero, so the string and
// numeric forms of a code never diverge.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(domain.OTPCodeMax-domain.OTPCodeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+domain.OTPCodeMin), nil
}

func validCodeFormat(code string) bool {
	if len(code) != domain.OTPCodeLength {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
