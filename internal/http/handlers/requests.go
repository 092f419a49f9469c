package handlers

import (
	"github.com/google/uuid"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
)

type promptOptionsPayload struct {
	DurationSeconds *int    `json:"duration_seconds" validate:"omitempty,min=1,max=3600"`
	Language        *string `json:"language" validate:"omitempty,min=2,max=40"`
	Platform        *string `json:"platform" validate:"omitempty,oneof=youtube instagram tiktok facebook generic"`
	Size            *string `json:"size" validate:"omitempty,oneof=landscape vertical square"`
	Category        *string `json:"category" validate:"omitempty,oneof=kids education marketing storytelling generic"`
}

type extractOptionsRequest struct {
	Prompt string `json:"prompt" validate:"required,min=10,max=12000"`
}

type extractOptionsResponse struct {
	RunID         uuid.UUID            `json:"run_id"`
	Options       domain.PromptOptions `json:"options"`
	MissingFields []string             `json:"missing_fields"`
}

type enhancePromptRequest struct {
	RunID   string               `json:"run_id" validate:"required,uuid"`
	Prompt  string               `json:"prompt" validate:"required,min=10,max=12000"`
	Options promptOptionsPayload `json:"options"`
}

type enhancePromptResponse struct {
	RunID          string `json:"run_id"`
	EnhancedPrompt string `json:"enhanced_prompt"`
}

type generateScriptRequest struct {
	RunID   string                `json:"run_id" validate:"required,uuid"`
	Prompt  string                `json:"prompt" validate:"required,min=10,max=12000"`
	Options *promptOptionsPayload `json:"options" validate:"omitempty"`
}

type generateScriptResponse struct {
	RunID  string `json:"run_id"`
	Script string `json:"script"`
}

type listRunsResponse struct {
	Runs []domain.RunSummary `json:"runs"`
}

// toDomain converts the validated payload into domain options. The
// validator has already confirmed enum membership, so parse failures here
// reduce to absent, the same fail-closed rule used on provider output.
func (p promptOptionsPayload) toDomain() domain.PromptOptions {
	var opts domain.PromptOptions
	opts.DurationSeconds = p.DurationSeconds
	if p.Language != nil {
		lang := domain.NormalizeLanguage(*p.Language)
		opts.Language = &lang
	}
	if p.Platform != nil {
		if platform, ok := domain.ParsePlatform(*p.Platform); ok {
			opts.Platform = &platform
		}
	}
	if p.Size != nil {
		if size, ok := domain.ParseSize(*p.Size); ok {
			opts.Size = &size
		}
	}
	if p.Category != nil {
		if category, ok := domain.ParseCategory(*p.Category); ok {
			opts.Category = &category
		}
	}
	return opts
}
