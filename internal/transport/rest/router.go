package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/skill-exchange/internal/access"
	"github.com/frahmantamala/skill-exchange/internal/auth"
	"github.com/frahmantamala/skill-exchange/internal/match"
	"github.com/frahmantamala/skill-exchange/internal/request"
	"github.com/frahmantamala/skill-exchange/internal/skill"
	"github.com/frahmantamala/skill-exchange/internal/transport/middleware"
	"github.com/frahmantamala/skill-exchange/internal/transport/swagger"
	"github.com/frahmantamala/skill-exchange/internal/user"
	"github.com/frahmantamala/skill-exchange/internal/want"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Auth    *auth.Handler
	User    *user.Handler
	Skill   *skill.Handler
	Want    *want.Handler
	Match   *match.Handler
	Request *request.Handler
	Access  *access.Handler
	Health  *HealthHandler

	// AuthLimiter throttles the unauthenticated /auth endpoints per client IP.
	AuthLimiter middleware.RateLimiter
	// TrustProxy rewrites RemoteAddr from the forwarding headers before
	// anything keys on the client address.
	TrustProxy bool
	// AllowedOrigins is the CORS allow list, comma separated or "*".
	AllowedOrigins string
	// OpenAPIPath is the spec file served at /openapi.yml.
	OpenAPIPath string
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, logger *slog.Logger) {
	if h.TrustProxy {
		router.Use(chiMiddleware.RealIP)
	}
	router.Use(middleware.CORS(h.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	if h.OpenAPIPath != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, h.OpenAPIPath)
		})
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.Skill != nil {
			r.Get("/skills", h.Skill.GetSkills)
		}

		if h.Auth == nil {
			return
		}

		r.Route("/auth", func(ar chi.Router) {
			ar.Use(middleware.RateLimit(h.AuthLimiter, "auth"))
			ar.Post("/register", h.Auth.Register)
			ar.Post("/login", h.Auth.Login)
			ar.Post("/refresh", h.Auth.RefreshToken)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
			}

			if h.Skill != nil {
				pr.Post("/skills", h.Skill.CreateSkill)
			}

			if h.Access != nil {
				// registered ahead of the public /skills/{id} so the literal segment wins
				pr.Get("/skills/authorized", h.Access.GetAuthorizedSkills)
				pr.Get("/skills/{id}/stream", h.Access.StreamSkill)
			}

			if h.Want != nil {
				pr.Post("/wants", h.Want.CreateWant)
				pr.Get("/wants", h.Want.GetWants)
			}

			if h.Match != nil {
				pr.Get("/matches", h.Match.GetMatches)
			}

			if h.Request != nil {
				pr.Route("/requests", func(rr chi.Router) {
					rr.Post("/", h.Request.CreateRequest)
					rr.Get("/", h.Request.GetRequests)
					rr.Get("/{id}", h.Request.GetRequest)
					rr.Patch("/{id}/accept", h.Request.AcceptRequest)
					rr.Patch("/{id}/decline", h.Request.DeclineRequest)
				})
			}
		})

		if h.Skill != nil {
			r.Get("/skills/{id}", h.Skill.GetSkill)
		}
	})
}
