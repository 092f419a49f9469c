package repo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
)

// PromptRepositoryPG implements domain.PromptRepository on PostgreSQL.
type PromptRepositoryPG struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromptRepository creates a prompt repository backed by the given pool.
func NewPromptRepository(pool *pgxpool.Pool, logger zerolog.Logger) *PromptRepositoryPG {
	return &PromptRepositoryPG{pool: pool, logger: logger}
}

// EnsureSession creates the session row if absent. Idempotent.
func (r *PromptRepositoryPG) EnsureSession(ctx context.Context, sessionID uuid.UUID) error {
	query := `
INSERT INTO sessions (id)
VALUES ($1)
ON CONFLICT (id) DO NOTHING;
`
	_, err := r.pool.Exec(ctx, query, sessionID)
	return err
}

// CreateRun inserts the run in status created plus an empty options row.
func (r *PromptRepositoryPG) CreateRun(ctx context.Context, prompt string, sessionID *uuid.UUID) (uuid.UUID, error) {
	runID := uuid.New()
	query := `
INSERT INTO prompt_runs (id, session_id, original_prompt, current_prompt, status)
VALUES ($1, $2, $3, $4, $5);
`
	if _, err := r.pool.Exec(ctx, query, runID, sessionID, prompt, prompt, domain.RunStatusCreated); err != nil {
		return uuid.Nil, err
	}
	seed := `
INSERT INTO prompt_options (run_id)
VALUES ($1)
ON CONFLICT (run_id) DO NOTHING;
`
	if _, err := r.pool.Exec(ctx, seed, runID); err != nil {
		return uuid.Nil, err
	}
	return runID, nil
}

// UpdateOptions upserts the full option set and bumps the run to extracted.
func (r *PromptRepositoryPG) UpdateOptions(ctx context.Context, runID uuid.UUID, options domain.PromptOptions, source string) error {
	query := `
INSERT INTO prompt_options (run_id, duration_seconds, language, platform, size, category, source, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
ON CONFLICT (run_id) DO UPDATE
SET duration_seconds = EXCLUDED.duration_seconds,
    language = EXCLUDED.language,
    platform = EXCLUDED.platform,
    size = EXCLUDED.size,
    category = EXCLUDED.category,
    source = EXCLUDED.source,
    updated_at = NOW();
`
	_, err := r.pool.Exec(ctx, query,
		runID,
		options.DurationSeconds,
		options.Language,
		enumText((*string)(options.Platform)),
		enumText((*string)(options.Size)),
		enumText((*string)(options.Category)),
		source,
	)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE prompt_runs SET status = $1, updated_at = NOW() WHERE id = $2;`,
		domain.RunStatusExtracted, runID,
	)
	return err
}

// UpdateCurrentPrompt sets current prompt and status in one write.
func (r *PromptRepositoryPG) UpdateCurrentPrompt(ctx context.Context, runID uuid.UUID, prompt string, status domain.RunStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE prompt_runs SET current_prompt = $1, status = $2, updated_at = NOW() WHERE id = $3;`,
		prompt, status, runID,
	)
	return err
}

// InsertScript appends a script row and marks the run script_generated.
func (r *PromptRepositoryPG) InsertScript(ctx context.Context, runID uuid.UUID, text, provider, model string) (uuid.UUID, error) {
	scriptID := uuid.New()
	query := `
INSERT INTO generated_scripts (id, run_id, script_text, provider, model)
VALUES ($1, $2, $3, $4, $5);
`
	if _, err := r.pool.Exec(ctx, query, scriptID, runID, text, provider, model); err != nil {
		return uuid.Nil, err
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE prompt_runs SET status = $1, updated_at = NOW() WHERE id = $2;`,
		domain.RunStatusScriptGenerated, runID,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return scriptID, nil
}

// LogEvent appends one audit event row with a jsonb payload.
func (r *PromptRepositoryPG) LogEvent(ctx context.Context, runID *uuid.UUID, eventType string, payload map[string]any, sessionID *uuid.UUID) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	query := `
INSERT INTO event_logs (id, session_id, run_id, event_type, payload)
VALUES ($1, $2, $3, $4, $5::jsonb);
`
	_, err = r.pool.Exec(ctx, query, uuid.New(), sessionID, runID, eventType, raw)
	return err
}

// LogError persists an error record. Failures are logged at debug level and
// swallowed: the audit trail must never mask or replace the original error.
func (r *PromptRepositoryPG) LogError(ctx context.Context, entry domain.ErrorLogEntry) {
	query := `
INSERT INTO error_logs (id, session_id, run_id, level, message, error_code, details, request_id, path)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := r.pool.Exec(ctx, query,
		uuid.New(),
		entry.SessionID,
		entry.RunID,
		entry.Level,
		entry.Message,
		nullable(entry.ErrorCode),
		nullable(entry.Details),
		nullable(entry.RequestID),
		nullable(entry.Path),
	)
	if err != nil {
		r.logger.Debug().Err(err).Msg("error log write failed")
	}
}

// GetRun returns the run view with its options and latest script.
func (r *PromptRepositoryPG) GetRun(ctx context.Context, runID uuid.UUID) (*domain.RunView, error) {
	query := `
SELECT r.id, r.original_prompt, r.current_prompt, r.status,
       o.duration_seconds, o.language, o.platform, o.size, o.category,
       s.script_text
FROM prompt_runs r
LEFT JOIN prompt_options o ON o.run_id = r.id
LEFT JOIN LATERAL (
    SELECT script_text
    FROM generated_scripts
    WHERE run_id = r.id
    ORDER BY created_at DESC
    LIMIT 1
) s ON true
WHERE r.id = $1;
`
	row := r.pool.QueryRow(ctx, query, runID)
	var view domain.RunView
	var platform, size, category *string
	if err := row.Scan(
		&view.RunID,
		&view.OriginalPrompt,
		&view.CurrentPrompt,
		&view.Status,
		&view.Options.DurationSeconds,
		&view.Options.Language,
		&platform,
		&size,
		&category,
		&view.LatestScript,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	// Stored values went through the same fail-closed gate on write, but the
	// parse keeps drifted rows from leaking unknown members.
	if platform != nil {
		if p, ok := domain.ParsePlatform(*platform); ok {
			view.Options.Platform = &p
		}
	}
	if size != nil {
		if sz, ok := domain.ParseSize(*size); ok {
			view.Options.Size = &sz
		}
	}
	if category != nil {
		if c, ok := domain.ParseCategory(*category); ok {
			view.Options.Category = &c
		}
	}
	return &view, nil
}

// ListRuns returns summaries ordered most-recently-updated first.
func (r *PromptRepositoryPG) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	query := `
SELECT id, original_prompt, current_prompt, status, created_at, updated_at
FROM prompt_runs
ORDER BY updated_at DESC
LIMIT $1;
`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		var summary domain.RunSummary
		if err := rows.Scan(
			&summary.RunID,
			&summary.OriginalPrompt,
			&summary.CurrentPrompt,
			&summary.Status,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

var _ domain.PromptRepository = (*PromptRepositoryPG)(nil)

func enumText(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
