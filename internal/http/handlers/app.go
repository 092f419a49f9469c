package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/middleware"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/workflow"
)

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Service      *workflow.Service
	Logger       zerolog.Logger
	Validate     *validator.Validate
	PromptGuard  bool
	RunListLimit int
}

// NewApp builds the handler container with its request validator.
func NewApp(service *workflow.Service, logger zerolog.Logger, promptGuard bool, runListLimit int) *App {
	if runListLimit <= 0 {
		runListLimit = 20
	}
	return &App{
		Service:      service,
		Logger:       logger,
		Validate:     validator.New(validator.WithRequiredStructEnabled()),
		PromptGuard:  promptGuard,
		RunListLimit: runListLimit,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errKey, details string) {
	a.json(w, code, map[string]string{"error": errKey, "details": details})
}

// sessionID reads the X-Session-Id header. Missing or malformed values are
// treated as absent; session correlation is best-effort, not auth.
func sessionID(r *http.Request) *uuid.UUID {
	raw := r.Header.Get("X-Session-Id")
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// persistError writes a best-effort audit record for a failed request. The
// repository swallows its own failures, so this can never mask the original
// error.
func (a *App) persistError(r *http.Request, level, message string, runID *uuid.UUID, errorCode, details string) {
	a.Service.Repository().LogError(r.Context(), domain.ErrorLogEntry{
		Level:     level,
		Message:   message,
		RunID:     runID,
		SessionID: sessionID(r),
		ErrorCode: errorCode,
		Details:   details,
		RequestID: middleware.RequestIDFromContext(r.Context()),
		Path:      r.URL.Path,
	})
}
