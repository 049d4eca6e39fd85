package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"artha/internal/domain/history"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type RecorderStats interface {
	Stats() history.RecorderStats
}

type Handler struct {
	db         Pinger
	recorder   RecorderStats
	service    string
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler reports on db and recorder; service names the translation provider.
func NewHandler(db Pinger, recorder RecorderStats, service string, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		db:         db,
		recorder:   recorder,
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
	huma.Register(api, h.infoOp(), h.info)
}

func (h *Handler) healthCheck(ctx context.Context, _ *struct{}) (*Output, error) {
	h.log.Debug("health check request received")

	return &Output{
		Body: Response{
			Status:    "OK",
			Message:   "Artha Translator API is running",
			Database:  h.database(ctx),
			Service:   h.service,
			History:   h.recorder.Stats(),
			Timestamp: time.Now().UTC(),
		},
	}, nil
}

func (h *Handler) info(ctx context.Context, _ *struct{}) (*infoOutput, error) {
	return &infoOutput{
		Body: InfoResponse{
			Message:  "Artha Backend Server is running!",
			Database: h.database(ctx),
			Endpoints: map[string]string{
				"health":               "GET /health",
				"translate":            "POST /translate",
				"auth/register":        "POST /api/auth/register",
				"auth/login":           "POST /api/auth/login",
				"user/profile":         "GET /api/user/profile (protected)",
				"translations/history": "GET /api/translations/history (protected)",
				"feedback":             "POST /api/feedback",
				"docs":                 "GET /docs",
			},
			Timestamp: time.Now().UTC(),
		},
	}, nil
}

func (h *Handler) database(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database ping failed", slog.String("error", err.Error()))
		return "Disconnected"
	}
	return "Connected"
}
