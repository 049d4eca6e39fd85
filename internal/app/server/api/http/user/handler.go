package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"artha/internal/app/server/api/http/apierr"
	"artha/internal/app/server/api/http/middleware/auth"
	"artha/internal/domain/token"
	"artha/internal/domain/user"
)

type Handler struct {
	service   user.Servicer
	tokens    token.Servicer
	log       *slog.Logger
	public    huma.Middlewares
	protected huma.Middlewares
}

// NewHandler takes two middleware sets: public for the auth endpoints, protected for the rest.
func NewHandler(service user.Servicer, tokens token.Servicer, log *slog.Logger, public, protected huma.Middlewares) *Handler {
	return &Handler{
		service:   service,
		tokens:    tokens,
		log:       log,
		public:    public,
		protected: protected,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.profileOp(), h.profile)
	huma.Register(api, h.preferencesOp(), h.preferences)
	huma.Register(api, h.passwordOp(), h.password)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*authOutput, error) {
	u, err := h.service.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return h.issue(u, "User created successfully")
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*authOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return h.issue(u, "Login successful")
}

func (h *Handler) issue(u user.User, message string) (*authOutput, error) {
	signed, err := h.tokens.Issue(u)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &authOutput{
		Body: AuthResponse{Message: message, Token: signed, User: u.Profile()},
	}, nil
}

func (h *Handler) profile(ctx context.Context, _ *struct{}) (*profileOutput, error) {
	userID, _ := auth.GetUserID(ctx)

	u, err := h.service.FindByID(ctx, userID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &profileOutput{Body: ProfileResponse{User: u.Profile()}}, nil
}

func (h *Handler) preferences(ctx context.Context, input *preferencesInput) (*profileOutput, error) {
	userID, _ := auth.GetUserID(ctx)

	u, err := h.service.UpdatePreferences(ctx, userID, input.Body)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &profileOutput{Body: ProfileResponse{User: u.Profile()}}, nil
}

func (h *Handler) password(ctx context.Context, input *passwordInput) (*messageOutput, error) {
	userID, _ := auth.GetUserID(ctx)

	err := h.service.ChangePassword(ctx, userID, input.Body.CurrentPassword, input.Body.NewPassword)
	if errors.Is(err, user.ErrInvalidAuth) {
		return nil, apierr.New(http.StatusUnauthorized, "Current password is incorrect")
	}
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &messageOutput{Body: UserMessageResponse{Message: "Password updated"}}, nil
}
