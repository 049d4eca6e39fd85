package feedback

import "artha/internal/domain/feedback"

type submitInput struct {
	Body SubmitRequest
}

type SubmitRequest struct {
	Name    string            `json:"name,omitempty" maxLength:"100" example:"Ravi"`
	Email   string            `json:"email,omitempty" maxLength:"320"`
	Type    string            `json:"type,omitempty" doc:"suggestion, bug, feature or general; empty means general" example:"general"`
	Message string            `json:"message" maxLength:"5000" example:"The swap button is great"`
}

type submitOutput struct {
	Body SubmitResponse
}

type SubmitResponse struct {
	Message    string `json:"message" example:"Thank you for your feedback!"`
	FeedbackID string `json:"feedbackId"`
}

type listOutput struct {
	Body FeedbackListResponse
}

type FeedbackListResponse struct {
	Feedback []feedback.Entry `json:"feedback"`
}

type statsOutput struct {
	Body feedback.Stats
}

type statusInput struct {
	ID   string `path:"id" format:"uuid"`
	Body StatusRequest
}

type StatusRequest struct {
	Status feedback.Status `json:"status"`
}

type replyInput struct {
	ID   string `path:"id" format:"uuid"`
	Body ReplyRequest
}

type ReplyRequest struct {
	Message string `json:"message" maxLength:"5000"`
}

type entryOutput struct {
	Body EntryResponse
}

type EntryResponse struct {
	Feedback feedback.Entry `json:"feedback"`
}
