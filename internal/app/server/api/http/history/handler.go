package history

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"artha/internal/app/server/api/http/apierr"
	"artha/internal/app/server/api/http/middleware/auth"
	"artha/internal/domain/history"
)

type Handler struct {
	service    history.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service history.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.saveOp(), h.save)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.clearOp(), h.clear)
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*messageOutput, error) {
	userID, _ := auth.GetUserID(ctx)

	err := h.service.Append(ctx, userID, history.Record{
		OriginalText:   input.Body.OriginalText,
		TranslatedText: input.Body.TranslatedText,
		SourceLang:     input.Body.SourceLang,
		TargetLang:     input.Body.TargetLang,
	})
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &messageOutput{Body: HistoryMessageResponse{Message: "Translation saved to history"}}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, _ := auth.GetUserID(ctx)

	records, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &listOutput{Body: HistoryListResponse{History: records}}, nil
}

func (h *Handler) clear(ctx context.Context, _ *struct{}) (*messageOutput, error) {
	userID, _ := auth.GetUserID(ctx)

	if err := h.service.Clear(ctx, userID); err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &messageOutput{Body: HistoryMessageResponse{Message: "Translation history cleared"}}, nil
}
