package dto

import (
	"strings"

	"briefly/internal/api/errors"
	"briefly/internal/app/model"
)

// ProcessChatRequest is the body of POST /api/process-chat
type ProcessChatRequest struct {
	Text string `json:"text" binding:"required"`
}

// Validate rejects whitespace-only text
func (r *ProcessChatRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.NewBadRequestError("No text provided")
	}
	return nil
}

// DistillationResponse wraps a result with the success flag clients check
type DistillationResponse struct {
	Success bool `json:"success"`
	*model.DistillationResult
}

// NewDistillationResponse builds a successful response
func NewDistillationResponse(result *model.DistillationResult) DistillationResponse {
	return DistillationResponse{Success: true, DistillationResult: result}
}
