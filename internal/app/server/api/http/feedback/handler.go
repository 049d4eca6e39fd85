package feedback

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"artha/internal/app/server/api/http/apierr"
	"artha/internal/app/server/api/http/middleware/auth"
	"artha/internal/domain/feedback"
	"artha/internal/domain/user"
)

// Users resolves the replying admin's display name.
type Users interface {
	FindByID(ctx context.Context, id string) (user.User, error)
}

type Handler struct {
	service feedback.Servicer
	users   Users
	log     *slog.Logger
	public  huma.Middlewares
	admin   huma.Middlewares
}

// NewHandler takes the middlewares for anonymous submission and for the admin-only operations.
func NewHandler(service feedback.Servicer, users Users, log *slog.Logger, public, admin huma.Middlewares) *Handler {
	return &Handler{
		service: service,
		users:   users,
		log:     log,
		public:  public,
		admin:   admin,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.submitOp(), h.submit)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.statsOp(), h.stats)
	huma.Register(api, h.statusOp(), h.updateStatus)
	huma.Register(api, h.replyOp(), h.reply)
}

func (h *Handler) submit(ctx context.Context, input *submitInput) (*submitOutput, error) {
	e, err := h.service.Submit(ctx, feedback.SubmitRequest{
		Name:    input.Body.Name,
		Email:   input.Body.Email,
		Type:    feedback.Category(input.Body.Type),
		Message: input.Body.Message,
	})
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &submitOutput{
		Body: SubmitResponse{Message: "Thank you for your feedback!", FeedbackID: e.ID},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	entries, err := h.service.List(ctx)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &listOutput{Body: FeedbackListResponse{Feedback: entries}}, nil
}

func (h *Handler) stats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	stats, err := h.service.Stats(ctx)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &statsOutput{Body: stats}, nil
}

func (h *Handler) updateStatus(ctx context.Context, input *statusInput) (*entryOutput, error) {
	e, err := h.service.UpdateStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &entryOutput{Body: EntryResponse{Feedback: e}}, nil
}

func (h *Handler) reply(ctx context.Context, input *replyInput) (*entryOutput, error) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		return nil, apierr.New(http.StatusForbidden, apierr.MsgAdminOnly)
	}

	admin := feedback.Admin{Email: claims.Email}
	if u, err := h.users.FindByID(ctx, claims.UserID); err == nil {
		admin.Name = u.Name
		admin.Email = u.Email
	} else {
		h.log.Warn("reply author lookup failed", slog.String("user_id", claims.UserID), slog.String("error", err.Error()))
	}

	e, err := h.service.Reply(ctx, input.ID, admin, input.Body.Message)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &entryOutput{Body: EntryResponse{Feedback: e}}, nil
}
