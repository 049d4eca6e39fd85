// Package apierr renders every API failure as {"error": "<message>"}.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"artha/internal/domain/feedback"
	"artha/internal/domain/history"
	"artha/internal/domain/token"
	"artha/internal/domain/translate"
	"artha/internal/domain/user"
)

const (
	MsgInternal     = "Internal server error"
	MsgTokenMissing = "Access token required"
	MsgTokenInvalid = "Invalid or expired token"
	MsgAdminOnly    = "Admin access required"
	MsgUserNotFound = "User not found"
)

type Error struct {
	status  int
	Message string `json:"error" doc:"Human readable error message"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.status
}

func New(status int, msg string) *Error {
	return &Error{status: status, Message: msg}
}

func init() {
	huma.NewError = newError
}

// newError replaces huma's problem+json errors. Schema validation failures become 400
// and server-side failures never leak their cause.
func newError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		if status != http.StatusServiceUnavailable {
			msg = MsgInternal
		}
		return New(status, msg)
	}

	if details := detailMessages(errs); details != "" {
		msg = details
	}

	return New(status, msg)
}

func detailMessages(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		var d *huma.ErrorDetail
		if errors.As(err, &d) {
			if d.Location != "" {
				parts = append(parts, d.Message+" ("+d.Location+")")
			} else {
				parts = append(parts, d.Message)
			}
			continue
		}
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

// From maps a service error to its HTTP form. Unknown errors are logged and reported as 500.
func From(log *slog.Logger, err error) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrDuplicate),
		errors.Is(err, translate.ErrInvalidInput),
		errors.Is(err, translate.ErrTextTooLong),
		errors.Is(err, history.ErrInvalidInput),
		errors.Is(err, feedback.ErrInvalidInput),
		errors.Is(err, feedback.ErrMessageMissing),
		errors.Is(err, feedback.ErrReplyMissing):
		return New(http.StatusBadRequest, err.Error())

	case errors.Is(err, user.ErrInvalidAuth):
		return New(http.StatusUnauthorized, err.Error())

	case errors.Is(err, token.ErrInvalidToken), errors.Is(err, token.ErrExpiredToken):
		return New(http.StatusForbidden, MsgTokenInvalid)

	case errors.Is(err, user.ErrNotFound), errors.Is(err, history.ErrNotFound):
		return New(http.StatusNotFound, MsgUserNotFound)

	case errors.Is(err, feedback.ErrNotFound):
		return New(http.StatusNotFound, "Feedback not found")

	case errors.Is(err, translate.ErrProviderUnavailable):
		return New(http.StatusServiceUnavailable, err.Error())
	}

	log.Error("request failed", slog.String("error", err.Error()))
	return New(http.StatusInternalServerError, MsgInternal)
}

// Write sends an error from inside a huma middleware, where returning an error is not possible.
func Write(ctx huma.Context, status int, msg string) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(status)
	return json.NewEncoder(ctx.BodyWriter()).Encode(New(status, msg))
}
