package translate

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"artha/internal/app/server/api/http/apierr"
	"artha/internal/domain/history"
	"artha/internal/domain/token"
	"artha/internal/domain/translate"
)

const selfTestText = "Hello, how are you today?"

// Recorder accepts history writes without blocking.
type Recorder interface {
	Enqueue(userID string, rec history.Record) bool
}

type Handler struct {
	service    translate.Servicer
	tokens     token.Servicer
	recorder   Recorder
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service translate.Servicer, tokens token.Servicer, recorder Recorder, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		tokens:     tokens,
		recorder:   recorder,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.translateOp(), h.translate)
	huma.Register(api, h.selfTestOp(), h.selfTest)
}

func (h *Handler) translate(ctx context.Context, input *translateInput) (*translateOutput, error) {
	req := input.Body

	res, err := h.service.Translate(ctx, req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	if req.SaveToHistory && req.AuthToken != "" {
		h.record(req.AuthToken, res)
	}

	return &translateOutput{
		Body: TranslateResponse{
			OriginalText:   res.OriginalText,
			TranslatedText: res.TranslatedText,
			SourceLang:     res.SourceLang,
			TargetLang:     res.TargetLang,
			Service:        res.Service,
			Timestamp:      res.Timestamp,
		},
	}, nil
}

// record hands the result to the background recorder. A bad token only skips the save.
func (h *Handler) record(authToken string, res translate.Result) {
	claims, err := h.tokens.Verify(authToken)
	if err != nil {
		h.log.Debug("history not saved: token rejected", slog.String("error", err.Error()))
		return
	}

	h.recorder.Enqueue(claims.UserID, history.Record{
		OriginalText:   res.OriginalText,
		TranslatedText: res.TranslatedText,
		SourceLang:     res.SourceLang,
		TargetLang:     res.TargetLang,
	})
}

func (h *Handler) selfTest(ctx context.Context, _ *struct{}) (*selfTestOutput, error) {
	res, err := h.service.Translate(ctx, selfTestText, "en", "es")
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &selfTestOutput{
		Body: SelfTestResponse{
			Status:     "SUCCESS",
			Original:   res.OriginalText,
			Translated: res.TranslatedText,
			Service:    res.Service,
			Message:    "Translation provider is working correctly",
		},
	}, nil
}
