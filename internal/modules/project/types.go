package project

import "github.com/auto-explainer/core/internal/models"

type processURLRequest struct {
	URL       string   `json:"url"       binding:"required"`
	Tone      string   `json:"tone"`
	Languages []string `json:"languages"`
}

// Tone must be present but may be empty; empty renders as premium.
type regenerateRequest struct {
	Tone      *string  `json:"tone"      binding:"required"`
	Languages []string `json:"languages"`
}

type updateOutputsRequest struct {
	Outputs models.Outputs `json:"outputs" binding:"required"`
}

type exportRequest struct {
	Format string `json:"format" binding:"required"`
}

type createdResponse struct {
	ID      string          `json:"id"`
	Project *models.Project `json:"project"`
}
