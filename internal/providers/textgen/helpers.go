package textgen

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
)

const extractSystemPrompt = "Extract video options from the user prompt into a strict JSON object. " +
	"Keys: duration_seconds (int), language (string or null), platform (string or null), size (string or null), category (string or null). " +
	"Rules: " +
	"duration_seconds: convert to seconds (e.g. '1 minute' or '1-min' -> 60, '30 seconds' -> 30, '2 min' -> 120). " +
	"platform: map explicitly: 'Instagram', 'Instagram Reels', 'Reels' -> instagram; 'YouTube' -> youtube; 'TikTok' -> tiktok; 'Facebook' -> facebook; else generic. " +
	"size: 'square'/'square format' -> square; 'vertical'/'portrait' -> vertical; 'landscape' -> landscape. " +
	"category: 'marketing'/'marketing tone' -> marketing; 'kids' -> kids; 'education'/'educational' -> education; 'storytelling' -> storytelling; else generic. " +
	"language: infer from prompt (e.g. 'in English' -> 'english') or null. " +
	"Allowed values only: platform=youtube|instagram|tiktok|facebook|generic; size=landscape|vertical|square; category=kids|education|marketing|storytelling|generic. " +
	"Return only the JSON object, no markdown or explanation."

const enhanceSystemPrompt = "Rewrite the prompt into a production-ready AI video generation brief. " +
	"Keep constraints explicit, concise, and practical. Return plain text only."

const scriptSystemPrompt = "Generate a cinematic scene-by-scene video script. " +
	"Include for each scene: visual direction, narration, mood, camera/shot cues, and transition."

// extractJSONObject locates the first '{' and the last '}' in raw model
// output and parses the substring as a JSON object. Tolerates leading and
// trailing commentary the model may add around the payload; a response with
// two unrelated objects would be mis-parsed, acceptable under the controlled
// system prompt.
func extractJSONObject(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, domain.NewProviderError("provider did not return JSON")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, domain.NewProviderError("could not parse provider JSON response")
	}
	return payload, nil
}

// coerceOptions converts an untrusted decoded object into PromptOptions.
// Every field fails closed: a value of the wrong type, outside its
// enumeration, or outside its numeric range is dropped, never guessed.
func coerceOptions(data map[string]any) domain.PromptOptions {
	var opts domain.PromptOptions
	if seconds, ok := intField(data["duration_seconds"]); ok && seconds >= 1 && seconds <= 3600 {
		opts.DurationSeconds = &seconds
	}
	if raw, ok := data["language"].(string); ok {
		lang := domain.NormalizeLanguage(raw)
		if n := utf8.RuneCountInString(lang); n >= 2 && n <= 40 {
			opts.Language = &lang
		}
	}
	if raw, ok := data["platform"].(string); ok {
		if platform, ok := domain.ParsePlatform(raw); ok {
			opts.Platform = &platform
		}
	}
	if raw, ok := data["size"].(string); ok {
		if size, ok := domain.ParseSize(raw); ok {
			opts.Size = &size
		}
	}
	if raw, ok := data["category"].(string); ok {
		if category, ok := domain.ParseCategory(raw); ok {
			opts.Category = &category
		}
	}
	return opts
}

// intField accepts the numeric representations encoding/json may produce
// for an integer field. Fractional values are rejected.
func intField(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// renderConstraints renders options for the script instruction, spelling
// out unresolved fields as "unspecified".
func renderConstraints(opts domain.PromptOptions) string {
	duration := "unspecified"
	if opts.DurationSeconds != nil {
		duration = fmt.Sprintf("%d", *opts.DurationSeconds)
	}
	return fmt.Sprintf("Duration: %ss. Platform: %s. Size: %s. Category: %s. Language: %s.",
		duration,
		stringOr((*string)(opts.Platform), "unspecified"),
		stringOr((*string)(opts.Size), "unspecified"),
		stringOr((*string)(opts.Category), "unspecified"),
		stringOr(opts.Language, "unspecified"),
	)
}

func stringOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
