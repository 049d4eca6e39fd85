package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-register",
		Method:        http.MethodPost,
		Path:          "/api/auth/register",
		Summary:       "Create an account",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.public,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Exchange credentials for a token",
		Tags:        []string{"auth"},
		Middlewares: h.public,
	}
}

func (h *Handler) profileOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-profile",
		Method:      http.MethodGet,
		Path:        "/api/user/profile",
		Summary:     "Current user's profile",
		Tags:        []string{"users"},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) preferencesOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-preferences",
		Method:      http.MethodPut,
		Path:        "/api/user/preferences",
		Summary:     "Replace language and theme preferences",
		Tags:        []string{"users"},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) passwordOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-password",
		Method:      http.MethodPost,
		Path:        "/api/user/password",
		Summary:     "Change password",
		Tags:        []string{"users"},
		Security:    bearer,
		Middlewares: h.protected,
	}
}
