package translate

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) translateOp() huma.Operation {
	return huma.Operation{
		OperationID: "translate",
		Method:      http.MethodPost,
		Path:        "/translate",
		Summary:     "Translate text",
		Description: "Anonymous callers are allowed. A valid authToken together with saveToHistory records the result in the background.",
		Tags:        []string{"translate"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) selfTestOp() huma.Operation {
	return huma.Operation{
		OperationID: "translate-self-test",
		Method:      http.MethodGet,
		Path:        "/test-translation",
		Summary:     "Translate a fixed phrase to check the provider",
		Tags:        []string{"translate"},
		Middlewares: h.middleware,
	}
}
