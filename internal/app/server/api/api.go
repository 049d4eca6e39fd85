// Routes:
//
//	GET    /                              service banner
//	GET    /health                        health and history writer counters
//	POST   /api/auth/register             create account
//	POST   /api/auth/login                exchange credentials for a token
//	GET    /api/user/profile              (auth)
//	PUT    /api/user/preferences          (auth)
//	POST   /api/user/password             (auth)
//	POST   /translate                     translate, optional background history write
//	GET    /test-translation              provider self-check
//	POST   /api/translations/save         (auth)
//	GET    /api/translations/history      (auth)
//	DELETE /api/translations/history      (auth)
//	POST   /api/feedback                  anonymous feedback
//	GET    /api/feedback                  (admin)
//	GET    /api/feedback/stats            (admin)
//	PATCH  /api/feedback/{id}/status      (admin)
//	POST   /api/feedback/{id}/replies     (admin)

package api

import (
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/exp/slog"

	feedbackAPI "artha/internal/app/server/api/http/feedback"
	healthAPI "artha/internal/app/server/api/http/health"
	historyAPI "artha/internal/app/server/api/http/history"
	"artha/internal/app/server/api/http/middleware"
	"artha/internal/app/server/api/http/middleware/auth"
	"artha/internal/app/server/api/http/middleware/logger"
	"artha/internal/app/server/api/http/middleware/ratelimit"
	"artha/internal/app/server/api/http/openapi"
	translateAPI "artha/internal/app/server/api/http/translate"
	userAPI "artha/internal/app/server/api/http/user"
	"artha/internal/domain/feedback"
	"artha/internal/domain/history"
	"artha/internal/domain/token"
	"artha/internal/domain/translate"
	"artha/internal/domain/user"
)

// Recorder is the background history writer as seen by the HTTP layer.
type Recorder interface {
	translateAPI.Recorder
	healthAPI.RecorderStats
}

type Services struct {
	Users     user.Servicer
	Tokens    token.Servicer
	Translate translate.Servicer
	History   history.Servicer
	Feedback  feedback.Servicer
	Recorder  Recorder
	DB        healthAPI.Pinger
	// Provider names the translation backend on /health.
	Provider string
}

type Options struct {
	CORSOrigins []string
	RateLimit   float64
	RateBurst   int
}

type Handlers struct {
	Health    *healthAPI.Handler
	User      *userAPI.Handler
	Translate *translateAPI.Handler
	History   *historyAPI.Handler
	Feedback  *feedbackAPI.Handler
}

func New(svc Services, opts Options, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	API := humachi.New(mux, openapi.Config())

	h := handlers(svc, opts, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Translate.SetupRoutes(API)
	h.History.SetupRoutes(API)
	h.Feedback.SetupRoutes(API)

	return mux
}

func handlers(svc Services, opts Options, log *slog.Logger) *Handlers {
	authMW := auth.New(svc.Tokens, log)
	loggerMW := logger.New(log)
	limiter := ratelimit.New(opts.RateLimit, opts.RateBurst, log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(svc.DB, svc.Recorder, svc.Provider, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	userHandler := userAPI.NewHandler(svc.Users, svc.Tokens, log, public, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(limiter.Middleware())
	translateHandler := translateAPI.NewHandler(svc.Translate, svc.Tokens, svc.Recorder, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	historyHandler := historyAPI.NewHandler(svc.History, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	public = middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	middlewares.Add(authMW.RequireRole(user.RoleAdmin))
	feedbackHandler := feedbackAPI.NewHandler(svc.Feedback, svc.Users, log, public, middlewares.GetAllAndClear())

	return &Handlers{
		Health:    healthHandler,
		User:      userHandler,
		Translate: translateHandler,
		History:   historyHandler,
		Feedback:  feedbackHandler,
	}
}
