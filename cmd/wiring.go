package cmd

import (
	"github.com/frahmantamala/skill-exchange/internal/access"
	accessPostgres "github.com/frahmantamala/skill-exchange/internal/access/postgres"
	"github.com/frahmantamala/skill-exchange/internal/auth"
	authPostgres "github.com/frahmantamala/skill-exchange/internal/auth/postgres"
	"github.com/frahmantamala/skill-exchange/internal/match"
	matchPostgres "github.com/frahmantamala/skill-exchange/internal/match/postgres"
	"github.com/frahmantamala/skill-exchange/internal/request"
	requestPostgres "github.com/frahmantamala/skill-exchange/internal/request/postgres"
	"github.com/frahmantamala/skill-exchange/internal/skill"
	skillPostgres "github.com/frahmantamala/skill-exchange/internal/skill/postgres"
	"github.com/frahmantamala/skill-exchange/internal/transport"
	"github.com/frahmantamala/skill-exchange/internal/transport/rest"
	"github.com/frahmantamala/skill-exchange/internal/user"
	userPostgres "github.com/frahmantamala/skill-exchange/internal/user/postgres"
	"github.com/frahmantamala/skill-exchange/internal/want"
	wantPostgres "github.com/frahmantamala/skill-exchange/internal/want/postgres"
)

// buildHandlers constructs every repository, service and handler on top of
// the store handles held by deps.
func buildHandlers(deps *Dependencies) rest.Handlers {
	cfg := deps.Config
	timeout := cfg.Database.QueryTimeout
	base := transport.NewBaseHandler(deps.Logger)

	skillRepo := skillPostgres.NewSkillRepository(deps.Gorm)
	wantRepo := wantPostgres.NewWantRepository(deps.Gorm)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.Gorm), tokenGen, cfg.Security.BCryptCost, deps.Logger).
		WithQueryTimeout(timeout)

	userService := user.NewService(userPostgres.NewRepository(deps.DB), deps.Logger, timeout)
	skillService := skill.NewService(skillRepo, deps.Media, deps.Logger, timeout)
	wantService := want.NewService(wantRepo, deps.Logger, timeout)
	matchService := match.NewService(wantRepo, matchPostgres.NewMatchRepository(deps.Gorm), deps.Logger, timeout)
	requestService := request.NewService(
		requestPostgres.NewRequestRepository(deps.Gorm),
		skillRepo,
		deps.Events,
		deps.Logger,
		request.Config{
			StrictTransitions: cfg.Workflow.StrictTransitions,
			QueryTimeout:      timeout,
		},
	)
	accessService := access.NewService(skillRepo, accessPostgres.NewAccessRepository(deps.Gorm), deps.Media, deps.Logger, timeout)

	health := map[string]rest.Pinger{"postgres": deps.DB}
	if deps.Media != nil {
		health["media"] = rest.PingFunc(deps.Media.Ping)
	}

	return rest.Handlers{
		Auth:    auth.NewHandler(base, authService),
		User:    user.NewHandler(base, userService),
		Skill:   skill.NewHandler(base, skillService, cfg.Media.MaxUploadBytes),
		Want:    want.NewHandler(base, wantService),
		Match:   match.NewHandler(base, matchService),
		Request: request.NewHandler(base, requestService),
		Access:  access.NewHandler(base, accessService),
		Health:  rest.NewHealthHandler(health),

		AuthLimiter:    rateLimiter(cfg.RateLimit),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustProxy:     cfg.Server.TrustProxy,
		OpenAPIPath:    cfg.Server.OpenAPIPath,
	}
}
