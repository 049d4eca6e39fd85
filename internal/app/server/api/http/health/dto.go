package health

import (
	"time"

	"artha/internal/domain/history"
)

// Output represents the output for health check endpoint
type Output struct {
	Body Response
}

// Response represents the health check response
type Response struct {
	Status    string                `json:"status" example:"OK" doc:"Health status of the service"`
	Message   string                `json:"message"`
	Database  string                `json:"database" example:"Connected"`
	Service   string                `json:"service" example:"google-translate"`
	History   history.RecorderStats `json:"history" doc:"Background history writer counters"`
	Timestamp time.Time             `json:"timestamp"`
}

type infoOutput struct {
	Body InfoResponse
}

type InfoResponse struct {
	Message   string            `json:"message"`
	Database  string            `json:"database"`
	Endpoints map[string]string `json:"endpoints"`
	Timestamp time.Time         `json:"timestamp"`
}
