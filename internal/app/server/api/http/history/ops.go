package history

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID: "history-save",
		Method:      http.MethodPost,
		Path:        "/api/translations/save",
		Summary:     "Add a translation to the caller's history",
		Tags:        []string{"history"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "history-list",
		Method:      http.MethodGet,
		Path:        "/api/translations/history",
		Summary:     "Caller's translation history",
		Tags:        []string{"history"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) clearOp() huma.Operation {
	return huma.Operation{
		OperationID: "history-clear",
		Method:      http.MethodDelete,
		Path:        "/api/translations/history",
		Summary:     "Remove every entry from the caller's history",
		Tags:        []string{"history"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}
