package handlers

import (
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
)

const dbUnavailableDetails = "Cannot connect to database. Check DATABASE_URL points to a reachable Postgres instance."

// userFacingDetails maps an AppError to the text shown to callers. Provider
// errors are sanitized by matching known substrings in priority order;
// their raw diagnostics (status codes, response bodies) stay in the logs.
// Validation errors pass through verbatim since they describe the caller's
// own input.
func userFacingDetails(appErr *domain.AppError) string {
	if appErr.Code != domain.CodeProviderError {
		return appErr.Message
	}
	msg := strings.ToLower(appErr.Message)
	switch {
	case strings.Contains(msg, "did not return json") || strings.Contains(msg, "could not parse provider json"):
		return "Invalid prompt. Try again or rephrase your prompt."
	case strings.Contains(msg, "invalid groq response") || strings.Contains(msg, "groq api error"):
		return "The AI service returned an unexpected response. Try again in a moment."
	case strings.Contains(msg, "missing groq_api_key"):
		return "AI service is not configured. Try again later or contact support."
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return "The request took too long. Try again or use a shorter prompt."
	default:
		return "Something went wrong with the AI service. Try again in a moment."
	}
}

// isDatabaseUnavailable reports whether err is a persistence-layer
// connectivity failure, which must surface as service-unavailable and never
// be attributed to the AI provider.
func isDatabaseUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
