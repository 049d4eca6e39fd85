package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"artha/internal/app/server/api/http/apierr"
	"artha/internal/domain/token"
	"artha/internal/domain/user"
)

type Auth struct {
	tokens token.Servicer
	log    *slog.Logger
}

func New(tokens token.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		tokens: tokens,
		log:    log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const claimsKey contextKey = "claims"

// Middleware admits requests carrying a valid bearer token and stores its claims in the context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		raw, ok := BearerToken(ctx.Header("Authorization"))
		if !ok {
			a.write(ctx, http.StatusUnauthorized, apierr.MsgTokenMissing)
			return
		}

		claims, err := a.tokens.Verify(raw)
		if err != nil {
			a.log.Debug("token verification failed",
				slog.String("path", ctx.URL().Path),
				slog.String("error", err.Error()),
			)
			a.write(ctx, http.StatusForbidden, apierr.MsgTokenInvalid)
			return
		}

		next(huma.WithContext(ctx, WithClaims(ctx.Context(), claims)))
	}
}

// RequireRole must run after Middleware.
func (a *Auth) RequireRole(role user.Role) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		claims, ok := GetClaims(ctx.Context())
		if !ok || claims.Role != role {
			a.write(ctx, http.StatusForbidden, apierr.MsgAdminOnly)
			return
		}

		next(ctx)
	}
}

func (a *Auth) write(ctx huma.Context, status int, msg string) {
	if err := apierr.Write(ctx, status, msg); err != nil {
		a.log.Error("failed to write auth error", slog.String("error", err.Error()))
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetClaims(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok && claims != nil
}

func GetUserID(ctx context.Context) (string, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, claims.UserID != ""
}
