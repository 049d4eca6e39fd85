package translate

import "time"

type translateInput struct {
	Body TranslateRequest
}

type TranslateRequest struct {
	Text          string `json:"text" example:"Hello, how are you today?"`
	SourceLang    string `json:"sourceLang" example:"en"`
	TargetLang    string `json:"targetLang" example:"es"`
	SaveToHistory bool   `json:"saveToHistory,omitempty" doc:"Record the result in the caller's history; needs authToken"`
	AuthToken     string `json:"authToken,omitempty" doc:"Bearer token of the caller, only read when saveToHistory is set"`
}

type translateOutput struct {
	Body TranslateResponse
}

type TranslateResponse struct {
	OriginalText   string    `json:"originalText"`
	TranslatedText string    `json:"translatedText"`
	SourceLang     string    `json:"sourceLang"`
	TargetLang     string    `json:"targetLang"`
	Service        string    `json:"service" example:"google-translate"`
	Timestamp      time.Time `json:"timestamp"`
}

type selfTestOutput struct {
	Body SelfTestResponse
}

type SelfTestResponse struct {
	Status     string `json:"status" example:"SUCCESS"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Service    string `json:"service"`
	Message    string `json:"message"`
}
