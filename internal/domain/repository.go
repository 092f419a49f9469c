package domain

import (
	"context"

	"github.com/google/uuid"
)

// PromptRepository defines persistence for prompt workflow runs.
//
// LogEvent and LogError are best-effort audit writes: LogError never
// propagates its own failure, and callers are expected to discard LogEvent
// errors in paths where an audit miss must not abort the operation.
type PromptRepository interface {
	// EnsureSession creates the session row if it does not exist. Idempotent.
	EnsureSession(ctx context.Context, sessionID uuid.UUID) error

	// CreateRun inserts a new run in status created with original and
	// current prompt both set to prompt, plus an empty options row.
	CreateRun(ctx context.Context, prompt string, sessionID *uuid.UUID) (uuid.UUID, error)

	// UpdateOptions replaces the run's option set wholesale and advances the
	// run status to extracted. source tags the origin of the values.
	UpdateOptions(ctx context.Context, runID uuid.UUID, options PromptOptions, source string) error

	// UpdateCurrentPrompt sets the run's current prompt and status.
	UpdateCurrentPrompt(ctx context.Context, runID uuid.UUID, prompt string, status RunStatus) error

	// InsertScript appends a generated script row and marks the run
	// script_generated.
	InsertScript(ctx context.Context, runID uuid.UUID, text, provider, model string) (uuid.UUID, error)

	// LogEvent appends an audit event. runID and sessionID may be nil.
	LogEvent(ctx context.Context, runID *uuid.UUID, eventType string, payload map[string]any, sessionID *uuid.UUID) error

	// LogError appends an error record. Swallows its own failures.
	LogError(ctx context.Context, entry ErrorLogEntry)

	// GetRun returns the run view, or ErrNotFound.
	GetRun(ctx context.Context, runID uuid.UUID) (*RunView, error)

	// ListRuns returns up to limit summaries, most-recently-updated first.
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// ErrorLogEntry is one row of the append-only error audit trail.
type ErrorLogEntry struct {
	Level     string
	Message   string
	RunID     *uuid.UUID
	SessionID *uuid.UUID
	ErrorCode string
	Details   string
	RequestID string
	Path      string
}
