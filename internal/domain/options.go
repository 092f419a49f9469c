package domain

import "strings"

// Platform enumerates the distribution platforms a video can target.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformFacebook  Platform = "facebook"
	PlatformGeneric   Platform = "generic"
)

// Size enumerates supported video aspect formats.
type Size string

const (
	SizeLandscape Size = "landscape"
	SizeVertical  Size = "vertical"
	SizeSquare    Size = "square"
)

// Category enumerates supported content categories.
type Category string

const (
	CategoryKids         Category = "kids"
	CategoryEducation    Category = "education"
	CategoryMarketing    Category = "marketing"
	CategoryStorytelling Category = "storytelling"
	CategoryGeneric      Category = "generic"
)

// ParsePlatform resolves an arbitrary string into a Platform. Unknown values
// report ok=false rather than a fabricated member; callers treat that as
// "not resolved". The same rule applies to ParseSize and ParseCategory so
// unvalidated model output and validated request bodies go through one gate.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformYouTube, PlatformInstagram, PlatformTikTok, PlatformFacebook, PlatformGeneric:
		return Platform(s), true
	}
	return "", false
}

// ParseSize resolves an arbitrary string into a Size.
func ParseSize(s string) (Size, bool) {
	switch Size(s) {
	case SizeLandscape, SizeVertical, SizeSquare:
		return Size(s), true
	}
	return "", false
}

// ParseCategory resolves an arbitrary string into a Category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryKids, CategoryEducation, CategoryMarketing, CategoryStorytelling, CategoryGeneric:
		return Category(s), true
	}
	return "", false
}

// PromptOptions holds the structured options resolved for a run. Every field
// is optional; nil means "not yet resolved". Options are replaced wholesale
// on update, there is no field-level merge at this layer.
type PromptOptions struct {
	DurationSeconds *int      `json:"duration_seconds"`
	Language        *string   `json:"language"`
	Platform        *Platform `json:"platform"`
	Size            *Size     `json:"size"`
	Category        *Category `json:"category"`
}

// MissingFields lists the option names that are still unresolved, in the
// fixed declaration order.
func (o PromptOptions) MissingFields() []string {
	missing := make([]string, 0, 5)
	if o.DurationSeconds == nil {
		missing = append(missing, "duration_seconds")
	}
	if o.Language == nil {
		missing = append(missing, "language")
	}
	if o.Platform == nil {
		missing = append(missing, "platform")
	}
	if o.Size == nil {
		missing = append(missing, "size")
	}
	if o.Category == nil {
		missing = append(missing, "category")
	}
	return missing
}

// NormalizeLanguage trims and lower-cases a language value. Idempotent.
func NormalizeLanguage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OptionSource tags where an option set came from.
const (
	OptionSourceExtract = "extract"
	OptionSourceUser    = "user"
)
