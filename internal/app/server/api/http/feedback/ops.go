package feedback

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) submitOp() huma.Operation {
	return huma.Operation{
		OperationID:   "feedback-submit",
		Method:        http.MethodPost,
		Path:          "/api/feedback",
		Summary:       "Send feedback",
		Tags:          []string{"feedback"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.public,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "feedback-list",
		Method:      http.MethodGet,
		Path:        "/api/feedback",
		Summary:     "All feedback, newest first",
		Tags:        []string{"feedback", "admin"},
		Security:    bearer,
		Middlewares: h.admin,
	}
}

func (h *Handler) statsOp() huma.Operation {
	return huma.Operation{
		OperationID: "feedback-stats",
		Method:      http.MethodGet,
		Path:        "/api/feedback/stats",
		Summary:     "Feedback counts by type and status",
		Tags:        []string{"feedback", "admin"},
		Security:    bearer,
		Middlewares: h.admin,
	}
}

func (h *Handler) statusOp() huma.Operation {
	return huma.Operation{
		OperationID: "feedback-status",
		Method:      http.MethodPatch,
		Path:        "/api/feedback/{id}/status",
		Summary:     "Move feedback to another review state",
		Tags:        []string{"feedback", "admin"},
		Security:    bearer,
		Middlewares: h.admin,
	}
}

func (h *Handler) replyOp() huma.Operation {
	return huma.Operation{
		OperationID:   "feedback-reply",
		Method:        http.MethodPost,
		Path:          "/api/feedback/{id}/replies",
		Summary:       "Reply to feedback",
		Tags:          []string{"feedback", "admin"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.admin,
	}
}
