// Package workflow drives the prompt run state machine: extract options,
// enhance the prompt, generate a script. Each step is one provider call
// followed by persistence and one audit event; a failed provider call
// leaves the run untouched and propagates to the caller, which owns error
// classification and error logging.
package workflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/providers/textgen"
)

// Service sequences provider calls with repository writes for one run.
// Safe for concurrent use across different runs; callers must serialize
// operations against the same run id themselves.
type Service struct {
	repo   domain.PromptRepository
	gen    textgen.Generator
	logger zerolog.Logger
}

func NewService(repo domain.PromptRepository, gen textgen.Generator, logger zerolog.Logger) *Service {
	return &Service{repo: repo, gen: gen, logger: logger}
}

// Repository exposes the injected repository for read-only callers such as
// the run lookup handlers.
func (s *Service) Repository() domain.PromptRepository {
	return s.repo
}

// ExtractOptions creates a new run for prompt and resolves its structured
// options through the provider. The run ends in status extracted however
// many fields resolved; unresolved fields stay absent, never guessed.
func (s *Service) ExtractOptions(ctx context.Context, prompt string, sessionID *uuid.UUID) (uuid.UUID, domain.PromptOptions, error) {
	if sessionID != nil {
		if err := s.repo.EnsureSession(ctx, *sessionID); err != nil {
			return uuid.Nil, domain.PromptOptions{}, err
		}
	}
	runID, err := s.repo.CreateRun(ctx, prompt, sessionID)
	if err != nil {
		return uuid.Nil, domain.PromptOptions{}, err
	}
	s.logger.Info().Str("run_id", runID.String()).Msg("run created, extracting options")

	options, usage, err := s.gen.ExtractOptions(ctx, prompt)
	if err != nil {
		return uuid.Nil, domain.PromptOptions{}, err
	}
	if err := s.repo.UpdateOptions(ctx, runID, options, domain.OptionSourceExtract); err != nil {
		return uuid.Nil, domain.PromptOptions{}, err
	}
	s.emitEvent(ctx, runID, "extract_options", usage, sessionID)
	return runID, options, nil
}

// EnhancePrompt rewrites prompt into a production brief. The caller-supplied
// options are persisted first with source user, since a human may have
// corrected them after extraction.
func (s *Service) EnhancePrompt(ctx context.Context, runID uuid.UUID, prompt string, options domain.PromptOptions, sessionID *uuid.UUID) (string, error) {
	if err := s.repo.UpdateOptions(ctx, runID, options, domain.OptionSourceUser); err != nil {
		return "", err
	}
	enhanced, usage, err := s.gen.EnhancePrompt(ctx, prompt, options)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateCurrentPrompt(ctx, runID, enhanced, domain.RunStatusEnhanced); err != nil {
		return "", err
	}
	s.emitEvent(ctx, runID, "enhance_prompt", usage, sessionID)
	return enhanced, nil
}

// GenerateScript produces a script for prompt and appends it to the run.
// The run's current prompt becomes the input prompt, not the script: the
// pipeline stays caller-driven and the stored prompt records the basis of
// the latest script.
func (s *Service) GenerateScript(ctx context.Context, runID uuid.UUID, prompt string, options *domain.PromptOptions, sessionID *uuid.UUID) (string, error) {
	script, usage, err := s.gen.GenerateScript(ctx, prompt, options)
	if err != nil {
		return "", err
	}
	if _, err := s.repo.InsertScript(ctx, runID, script, s.gen.ProviderName(), s.gen.ModelName()); err != nil {
		return "", err
	}
	if err := s.repo.UpdateCurrentPrompt(ctx, runID, prompt, domain.RunStatusScriptGenerated); err != nil {
		return "", err
	}
	s.emitEvent(ctx, runID, "generate_script", usage, sessionID)
	return script, nil
}

// emitEvent writes the per-step audit event. Best-effort: an audit miss is
// logged but never fails the step that already succeeded.
func (s *Service) emitEvent(ctx context.Context, runID uuid.UUID, eventType string, usage *textgen.Usage, sessionID *uuid.UUID) {
	payload := map[string]any{
		"provider": s.gen.ProviderName(),
		"model":    s.gen.ModelName(),
	}
	if usage != nil {
		payload["usage"] = usage
	}
	if err := s.repo.LogEvent(ctx, &runID, eventType, payload, sessionID); err != nil {
		s.logger.Warn().Err(err).Str("event_type", eventType).Msg("event log write failed")
	}
}
