package handlers

import (
	"testing"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
)

func TestUserFacingDetailsProviderMessages(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "no_json",
			message: "provider did not return JSON",
			want:    "Invalid prompt. Try again or rephrase your prompt.",
		},
		{
			name:    "unparseable_json",
			message: "could not parse provider JSON response",
			want:    "Invalid prompt. Try again or rephrase your prompt.",
		},
		{
			name:    "api_error",
			message: "groq api error: 500 internal",
			want:    "The AI service returned an unexpected response. Try again in a moment.",
		},
		{
			name:    "invalid_structure",
			message: "invalid groq response structure",
			want:    "The AI service returned an unexpected response. Try again in a moment.",
		},
		{
			name:    "missing_key",
			message: "missing GROQ_API_KEY for live provider",
			want:    "AI service is not configured. Try again later or contact support.",
		},
		{
			name:    "timeout",
			message: "groq request failed: context deadline exceeded (Client.Timeout exceeded while awaiting headers)",
			want:    "The request took too long. Try again or use a shorter prompt.",
		},
		{
			name:    "timed_out",
			message: "groq request failed: dial tcp: connection timed out",
			want:    "The request took too long. Try again or use a shorter prompt.",
		},
		{
			name:    "fallback",
			message: "something novel happened",
			want:    "Something went wrong with the AI service. Try again in a moment.",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := userFacingDetails(domain.NewProviderError(tc.message))
			if got != tc.want {
				t.Fatalf("userFacingDetails(%q) = %q, want %q", tc.message, got, tc.want)
			}
		})
	}
}

func TestUserFacingDetailsValidationPassesThrough(t *testing.T) {
	t.Parallel()
	appErr := domain.NewValidationError("prompt must be at least 10 characters")
	if got := userFacingDetails(appErr); got != "prompt must be at least 10 characters" {
		t.Fatalf("userFacingDetails = %q", got)
	}
}
