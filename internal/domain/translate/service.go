package translate

import (
	"context"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// MaxTextLength is counted in characters, not bytes.
const MaxTextLength = 2000

type Result struct {
	OriginalText   string
	TranslatedText string
	SourceLang     string
	TargetLang     string
	Service        string
	Timestamp      time.Time
}

type Servicer interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (Result, error)
}

type Service struct {
	provider Provider
	timeout  time.Duration
	log      *slog.Logger
	now      func() time.Time
}

func NewService(provider Provider, timeout time.Duration, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		timeout:  timeout,
		log:      log.With(slog.String("component", "translate_service")),
		now:      time.Now,
	}
}

func (s *Service) Translate(ctx context.Context, text, sourceLang, targetLang string) (Result, error) {
	sourceLang = strings.TrimSpace(sourceLang)
	targetLang = strings.TrimSpace(targetLang)

	if text == "" || sourceLang == "" || targetLang == "" {
		return Result{}, ErrInvalidInput
	}

	if len([]rune(text)) > MaxTextLength {
		return Result{}, ErrTextTooLong
	}

	// A caller hanging up must not cut the provider call short; only the timeout does.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	start := s.now()
	translated, err := s.provider.Translate(callCtx, text, sourceLang, targetLang)
	if err != nil {
		s.log.Error("provider call failed",
			slog.String("provider", s.provider.Name()),
			slog.String("source", sourceLang),
			slog.String("target", targetLang),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return Result{}, ErrProviderUnavailable
	}

	return Result{
		OriginalText:   text,
		TranslatedText: translated,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
		Service:        s.provider.Name(),
		Timestamp:      s.now().UTC(),
	}, nil
}
