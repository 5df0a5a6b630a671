package handler

import "markettrends/internal/model"

type SummarizeRequest struct {
	Data      []model.Record `json:"data"`
	MinLength *int           `json:"min_length"`
	MaxLength *int           `json:"max_length"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type CompileRequest struct {
	Data []model.Record `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Summarizer string `json:"summarizer"`
	Report     string `json:"report"`
}
