package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Append(ctx context.Context, userID string, rec Record) error
	List(ctx context.Context, userID string) ([]Record, error)
	Clear(ctx context.Context, userID string) error
}

// Appender is the slice of Servicer the Recorder needs.
type Appender interface {
	Append(ctx context.Context, userID string, rec Record) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "history_service")),
		now:  time.Now,
	}
}

// Append stamps rec with the insertion time and prepends it to the user's ledger.
func (s *Service) Append(ctx context.Context, userID string, rec Record) error {
	if userID == "" || rec.OriginalText == "" || rec.TranslatedText == "" || rec.SourceLang == "" || rec.TargetLang == "" {
		return ErrInvalidInput
	}

	rec.Timestamp = s.now().UTC()

	err := s.repo.Update(ctx, userID, func(l *Ledger) error {
		l.Prepend(rec)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("append history: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	records, err := s.repo.List(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("list history: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	err := s.repo.Update(ctx, userID, func(l *Ledger) error {
		l.Reset()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("clear history: %w", err)
	}

	s.log.Info("history cleared", slog.String("user_id", userID))
	return nil
}
