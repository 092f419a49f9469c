// Package guard rejects prompts containing obvious prompt-injection
// phrases. Best-effort only; the provider's system prompts are the primary
// defense.
package guard

import "strings"

// Minimal blocklist: phrases that are clearly adversarial. Kept narrow so
// legitimate creative prompts (e.g. "the hero loses the key") pass. All
// checks are case-insensitive.
var blocklist = []string{
	"forget instructions",
	"ignore previous instructions",
	"ignore all previous",
	"disregard instructions",
	"expose database",
	"database key",
	"reveal api key",
	"reveal database",
	"expose api key",
	"ignore your instructions",
}

// Blocked reports whether the prompt contains a blocklisted phrase, and
// which phrase matched first.
func Blocked(prompt string) (bool, string) {
	if strings.TrimSpace(prompt) == "" {
		return false, ""
	}
	lower := strings.ToLower(prompt)
	for _, phrase := range blocklist {
		if strings.Contains(lower, phrase) {
			return true, phrase
		}
	}
	return false, ""
}
