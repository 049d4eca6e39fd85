package history

import "artha/internal/domain/history"

type saveInput struct {
	Body SaveRequest
}

type SaveRequest struct {
	OriginalText   string `json:"originalText" minLength:"1"`
	TranslatedText string `json:"translatedText" minLength:"1"`
	SourceLang     string `json:"sourceLang" minLength:"1" example:"en"`
	TargetLang     string `json:"targetLang" minLength:"1" example:"es"`
}

type listOutput struct {
	Body HistoryListResponse
}

type HistoryListResponse struct {
	History []history.Record `json:"history" doc:"Newest first, at most 50 entries"`
}

type messageOutput struct {
	Body HistoryMessageResponse
}

type HistoryMessageResponse struct {
	Message string `json:"message"`
}
