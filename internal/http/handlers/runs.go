package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
)

// GetRun returns the run view: prompts, status, options, latest script.
func (a *App) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(chi.URLParam(r, "run_id"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_run_id", "run_id must be a UUID")
		return
	}

	view, err := a.Service.Repository().GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.json(w, http.StatusNotFound, map[string]string{"error": "not_found"})
			return
		}
		if isDatabaseUnavailable(err) {
			a.Logger.Error().Err(err).Msg("database connection failed")
			a.error(w, http.StatusServiceUnavailable, "database_unavailable", dbUnavailableDetails)
			return
		}
		a.Logger.Error().Err(err).Msg("run lookup failed")
		a.error(w, http.StatusInternalServerError, domain.CodeAppError, "Service unavailable. Try again in a moment.")
		return
	}
	a.json(w, http.StatusOK, view)
}

// ListRuns returns recent run summaries, most-recently-updated first.
func (a *App) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := a.Service.Repository().ListRuns(r.Context(), a.RunListLimit)
	if err != nil {
		if isDatabaseUnavailable(err) {
			a.Logger.Error().Err(err).Msg("database connection failed")
			a.error(w, http.StatusServiceUnavailable, "database_unavailable", dbUnavailableDetails)
			return
		}
		a.Logger.Error().Err(err).Msg("run listing failed")
		a.error(w, http.StatusInternalServerError, domain.CodeAppError, "Service unavailable. Try again in a moment.")
		return
	}
	if runs == nil {
		runs = []domain.RunSummary{}
	}
	a.json(w, http.StatusOK, listRunsResponse{Runs: runs})
}
