package textgen

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
)

// StaticGenerator produces deterministic output without any network call.
// Used as the provider in tests and in local environments that have no
// Groq credentials (PROMPT_PROVIDER=static).
type StaticGenerator struct{}

func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (s *StaticGenerator) ProviderName() string { return staticProviderName }

func (s *StaticGenerator) ModelName() string { return "static-v1" }

// ExtractOptions resolves a handful of obvious literal markers so local
// round trips exercise the full option pipeline. Everything else stays
// unresolved, mirroring how the live provider reports unknowns.
func (s *StaticGenerator) ExtractOptions(ctx context.Context, prompt string) (domain.PromptOptions, *Usage, error) {
	lower := strings.ToLower(prompt)
	var opts domain.PromptOptions
	for _, candidate := range []domain.Platform{
		domain.PlatformYouTube, domain.PlatformInstagram, domain.PlatformTikTok, domain.PlatformFacebook,
	} {
		if strings.Contains(lower, string(candidate)) {
			platform := candidate
			opts.Platform = &platform
			break
		}
	}
	for _, candidate := range []domain.Size{domain.SizeVertical, domain.SizeLandscape, domain.SizeSquare} {
		if strings.Contains(lower, string(candidate)) {
			size := candidate
			opts.Size = &size
			break
		}
	}
	for _, candidate := range []domain.Category{
		domain.CategoryKids, domain.CategoryEducation, domain.CategoryMarketing, domain.CategoryStorytelling,
	} {
		if strings.Contains(lower, string(candidate)) {
			category := candidate
			opts.Category = &category
			break
		}
	}
	if strings.Contains(lower, "english") {
		lang := "english"
		opts.Language = &lang
	}
	if strings.Contains(lower, "30 second") {
		seconds := 30
		opts.DurationSeconds = &seconds
	} else if strings.Contains(lower, "1 minute") {
		seconds := 60
		opts.DurationSeconds = &seconds
	}
	return opts, nil, nil
}

func (s *StaticGenerator) EnhancePrompt(ctx context.Context, prompt string, options domain.PromptOptions) (string, *Usage, error) {
	return fmt.Sprintf("Production brief: %s (%s)", strings.TrimSpace(prompt), renderConstraints(options)), nil, nil
}

func (s *StaticGenerator) GenerateScript(ctx context.Context, prompt string, options *domain.PromptOptions) (string, *Usage, error) {
	titler := cases.Title(language.Und)
	subject := titler.String(strings.TrimSpace(prompt))
	var sb strings.Builder
	fmt.Fprintf(&sb, "Scene 1: Opening shot establishing %s. Mood: warm. Camera: wide. Transition: cut.\n", subject)
	if options != nil {
		fmt.Fprintf(&sb, "Constraints: %s\n", renderConstraints(*options))
	}
	sb.WriteString("Scene 2: Closing shot with narration wrap-up. Mood: uplifting. Camera: slow zoom. Transition: fade.")
	return sb.String(), nil, nil
}

var _ Generator = (*StaticGenerator)(nil)
