package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/guard"
)

// ExtractOptions creates a run for the submitted prompt and resolves its
// structured options through the provider.
func (a *App) ExtractOptions(w http.ResponseWriter, r *http.Request) {
	var req extractOptionsRequest
	if !a.decodeAndValidate(w, r, &req, "Invalid extract request") {
		return
	}
	if a.rejectedByGuard(w, r, req.Prompt) {
		return
	}

	runID, options, err := a.Service.ExtractOptions(r.Context(), req.Prompt, sessionID(r))
	if err != nil {
		a.respondStepFailure(w, r, "Extract failed", nil, err)
		return
	}
	a.json(w, http.StatusOK, extractOptionsResponse{
		RunID:         runID,
		Options:       options,
		MissingFields: options.MissingFields(),
	})
}

// EnhancePrompt persists the caller's (possibly corrected) options and
// rewrites the prompt into a production brief.
func (a *App) EnhancePrompt(w http.ResponseWriter, r *http.Request) {
	var req enhancePromptRequest
	if !a.decodeAndValidate(w, r, &req, "Invalid enhance request") {
		return
	}
	if a.rejectedByGuard(w, r, req.Prompt) {
		return
	}
	runID, err := uuid.Parse(req.RunID)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_run_id", "run_id must be a UUID")
		return
	}

	enhanced, err := a.Service.EnhancePrompt(r.Context(), runID, req.Prompt, req.Options.toDomain(), sessionID(r))
	if err != nil {
		a.respondStepFailure(w, r, "Enhance failed", &runID, err)
		return
	}
	a.json(w, http.StatusOK, enhancePromptResponse{RunID: req.RunID, EnhancedPrompt: enhanced})
}

// GenerateScript produces a scene-by-scene script for the run. Options are
// optional; generation may run ungrounded.
func (a *App) GenerateScript(w http.ResponseWriter, r *http.Request) {
	var req generateScriptRequest
	if !a.decodeAndValidate(w, r, &req, "Invalid script request") {
		return
	}
	if a.rejectedByGuard(w, r, req.Prompt) {
		return
	}
	runID, err := uuid.Parse(req.RunID)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_run_id", "run_id must be a UUID")
		return
	}

	var options *domain.PromptOptions
	if req.Options != nil {
		opts := req.Options.toDomain()
		options = &opts
	}
	script, err := a.Service.GenerateScript(r.Context(), runID, req.Prompt, options, sessionID(r))
	if err != nil {
		a.respondStepFailure(w, r, "Script generation failed", &runID, err)
		return
	}
	a.json(w, http.StatusOK, generateScriptResponse{RunID: req.RunID, Script: script})
}

// decodeAndValidate parses the body into req and runs struct validation.
// On failure it answers 400 with the technical detail (the error describes
// caller input, not internal state) and records a warning audit row.
func (a *App) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any, logMessage string) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.Logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid request payload")
		a.persistError(r, "warning", logMessage, nil, "", err.Error())
		a.error(w, http.StatusBadRequest, "Invalid request", err.Error())
		return false
	}
	if err := a.Validate.Struct(req); err != nil {
		a.Logger.Warn().Err(err).Str("path", r.URL.Path).Msg("request validation failed")
		a.persistError(r, "warning", logMessage, nil, "", err.Error())
		a.error(w, http.StatusBadRequest, "Invalid request", err.Error())
		return false
	}
	return true
}

// rejectedByGuard applies the optional prompt-injection blocklist before
// any provider call.
func (a *App) rejectedByGuard(w http.ResponseWriter, r *http.Request, prompt string) bool {
	if !a.PromptGuard {
		return false
	}
	blocked, phrase := guard.Blocked(prompt)
	if !blocked {
		return false
	}
	a.Logger.Info().Str("matched_phrase", phrase).Msg("prompt guard blocked prompt")
	a.error(w, http.StatusBadRequest, "Invalid request", "Prompt not allowed.")
	return true
}

// respondStepFailure classifies a workflow step failure: infrastructure
// errors become 503 with a generic body, everything else is treated as an
// upstream failure, audited, and answered 502 with sanitized detail.
func (a *App) respondStepFailure(w http.ResponseWriter, r *http.Request, logMessage string, runID *uuid.UUID, err error) {
	if isDatabaseUnavailable(err) {
		a.Logger.Error().Err(err).Msg("database connection failed")
		a.error(w, http.StatusServiceUnavailable, "database_unavailable", dbUnavailableDetails)
		return
	}
	appErr, ok := domain.AsAppError(err)
	if !ok {
		// Unexpected infrastructure failure: audit the technical detail but
		// surface nothing internal.
		a.Logger.Error().Err(err).Msg(logMessage)
		a.persistError(r, "error", logMessage, runID, domain.CodeAppError, err.Error())
		a.error(w, http.StatusInternalServerError, domain.CodeAppError, "Service unavailable. Try again in a moment.")
		return
	}
	a.Logger.Error().Err(err).Str("error_code", appErr.Code).Msg(logMessage)
	a.persistError(r, "error", logMessage, runID, appErr.Code, appErr.Message)
	a.error(w, http.StatusBadGateway, appErr.Code, userFacingDetails(appErr))
}
