package textgen

import (
	"context"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
)

const (
	groqProviderName   = "groq-live"
	staticProviderName = "static"
)

// Usage is the token accounting a provider reports for one call. Logged for
// cost observability only; nil when the provider omits it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Generator is the text-generation capability consumed by the workflow
// service. Implementations make at most one upstream call per operation and
// never retry; transport failures surface as provider errors.
type Generator interface {
	// ExtractOptions asks the model to resolve structured video options from
	// a free-text prompt. Fields the model cannot resolve, or resolves to a
	// value outside the allowed enumerations, come back unset.
	ExtractOptions(ctx context.Context, prompt string) (domain.PromptOptions, *Usage, error)

	// EnhancePrompt rewrites the prompt into a production brief using the
	// resolved options. Returns trimmed free text.
	EnhancePrompt(ctx context.Context, prompt string, options domain.PromptOptions) (string, *Usage, error)

	// GenerateScript produces a scene-by-scene script. options may be nil;
	// generation then runs ungrounded.
	GenerateScript(ctx context.Context, prompt string, options *domain.PromptOptions) (string, *Usage, error)

	ProviderName() string
	ModelName() string
}
