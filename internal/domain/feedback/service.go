package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Submit(ctx context.Context, req SubmitRequest) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Stats(ctx context.Context) (Stats, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Entry, error)
	Reply(ctx context.Context, id string, admin Admin, message string) (Entry, error)
}

type Service struct {
	repo  Repository
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		log:   log.With(slog.String("component", "feedback_service")),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Entry, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Entry{}, ErrMessageMissing
	}
	if len([]rune(message)) > MaxMessageLength {
		return Entry{}, fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, MaxMessageLength)
	}

	typ := req.Type
	if typ == "" {
		typ = CategoryGeneral
	}
	if err := typ.Validate(); err != nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultName
	}

	e := Entry{
		ID:        s.newID(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Type:      typ,
		Message:   message,
		Status:    StatusNew,
		Replies:   []Reply{},
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, fmt.Errorf("create feedback: %w", err)
	}

	s.log.Info("feedback submitted", slog.String("feedback_id", e.ID), slog.String("type", string(e.Type)))
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Stats reports counts over the whole collection. Every known type and status is present, zero when unused.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	counts, err := s.repo.GroupCounts(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("feedback stats: %w", err)
	}

	stats := Stats{
		ByType:   make(map[Category]int, len(Categories)),
		ByStatus: make(map[Status]int, len(Statuses)),
	}
	for _, c := range Categories {
		stats.ByType[c] = 0
	}
	for _, st := range Statuses {
		stats.ByStatus[st] = 0
	}

	for _, c := range counts {
		stats.Total += c.N
		stats.ByType[c.Type] += c.N
		stats.ByStatus[c.Status] += c.N
	}

	return stats, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Entry, error) {
	if err := status.Validate(); err != nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	e, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("update feedback status: %w", err)
	}

	s.log.Info("feedback status changed", slog.String("feedback_id", id), slog.String("status", string(status)))
	return e, nil
}

func (s *Service) Reply(ctx context.Context, id string, admin Admin, message string) (Entry, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Entry{}, ErrReplyMissing
	}
	if len([]rune(message)) > MaxMessageLength {
		return Entry{}, fmt.Errorf("%w: reply must be at most %d characters", ErrInvalidInput, MaxMessageLength)
	}

	reply := Reply{
		AdminName:  admin.Name,
		AdminEmail: admin.Email,
		Message:    message,
		CreatedAt:  s.now().UTC(),
	}

	e, err := s.repo.AppendReply(ctx, id, reply)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("reply to feedback: %w", err)
	}

	return e, nil
}
