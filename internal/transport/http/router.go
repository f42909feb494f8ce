package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/voyeglobal/auth-api/internal/application/auth"
	"github.com/voyeglobal/auth-api/internal/application/contact"
	"github.com/voyeglobal/auth-api/internal/application/profile"
	"github.com/voyeglobal/auth-api/internal/application/session"
	"github.com/voyeglobal/auth-api/internal/config"
	"github.com/voyeglobal/auth-api/internal/transport/http/handler"
	appmiddleware "github.com/voyeglobal/auth-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	loginHook := session.NewNotificationHook(deps.NotificationRepo, deps.Logger)
	establisher := session.NewEstablisher(deps.UserRepo, loginHook, deps.Logger)

	authSvc := auth.NewService(auth.ServiceDeps{
		Store:    deps.CredStore,
		Users:    deps.UserRepo,
		Mailer:   deps.Mailer,
		SMS:      deps.SMSSender,
		Issuer:   deps.Issuer,
		Sessions: establisher,
		Commerce: deps.Commerce,
		Logger:   deps.Logger,
		SiteName: cfg.SiteName,
	})
	profileSvc := profile.NewService(deps.UserRepo, deps.AvatarStore, deps.Logger)
	contactSvc := contact.NewService(deps.Mailer, cfg.AdminEmail, cfg.SiteName, cfg.SiteURL)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	contactH := handler.NewContactHandler(contactSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/request-code", authH.RequestCode)
		r.With(sensitiveRL.Limit).Post("/auth/resend-code", authH.ResendCode)
		r.With(sensitiveRL.Limit).Post("/auth/verify-code", authH.VerifyCode)
		r.With(sensitiveRL.Limit).Post("/contact", contactH.Send)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.Issuer))

			r.Get("/profile", profileH.GetCurrent)
		})
	})

	return r
}
