package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus enumerates the workflow lifecycle states of a run.
type RunStatus string

const (
	RunStatusCreated         RunStatus = "created"
	RunStatusExtracted       RunStatus = "extracted"
	RunStatusEnhanced        RunStatus = "enhanced"
	RunStatusScriptGenerated RunStatus = "script_generated"
	RunStatusFailed          RunStatus = "failed"
)

// Run is one end-to-end workflow instance tracked from initial prompt
// through optional enhancement to script generation. OriginalPrompt is
// immutable after creation; CurrentPrompt reflects the most recent step.
type Run struct {
	ID             uuid.UUID
	SessionID      *uuid.UUID
	OriginalPrompt string
	CurrentPrompt  string
	Status         RunStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GeneratedScript is one append-only script row produced for a run.
type GeneratedScript struct {
	ID        uuid.UUID
	RunID     uuid.UUID
	Text      string
	Provider  string
	Model     string
	CreatedAt time.Time
}

// RunView is the read model for a single run: the run itself, its current
// option set, and the latest generated script if any.
type RunView struct {
	RunID          uuid.UUID     `json:"run_id"`
	OriginalPrompt string        `json:"original_prompt"`
	CurrentPrompt  string        `json:"current_prompt"`
	Status         RunStatus     `json:"status"`
	Options        PromptOptions `json:"options"`
	LatestScript   *string       `json:"latest_script"`
}

// RunSummary is the list read model, ordered most-recently-updated first.
type RunSummary struct {
	RunID          uuid.UUID `json:"run_id"`
	OriginalPrompt string    `json:"original_prompt"`
	CurrentPrompt  string    `json:"current_prompt"`
	Status         RunStatus `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
