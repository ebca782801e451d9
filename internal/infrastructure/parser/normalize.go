package parser

import (
	"regexp"
	"strings"

	"github.com/doeshing/vox-go/internal/domain"
)

// LLMs wrap commands in markdown fences or answer with a refusal instead of
// a command. Normalization handles both before any splitting happens.

var fencePattern = regexp.MustCompile("(?s)```(?:\\w*\\n?)?(.*?)```")

// Replies that decline to produce a command rather than emitting one.
var refusalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)i(?:'m| am) (?:sorry|unable|not able)`),
	regexp.MustCompile(`(?i)(?:doesn't|does not|don't|do not) match`),
	regexp.MustCompile(`(?i)no (?:matching|available|valid) command`),
	regexp.MustCompile(`(?i)cannot (?:find|identify|determine)`),
	regexp.MustCompile(`(?i)i can(?:'t|not)`),
}

// Normalize strips markdown code fences and surrounding whitespace, and
// detects refusal replies. A refusal is returned as *domain.RefusalError so
// the caller can hand the model's own words to the spoken-delivery layer.
func Normalize(raw string) (string, error) {
	cleaned := stripFences(raw)
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return "", domain.ErrEmptyCommandChain
	}
	for _, pattern := range refusalPatterns {
		if pattern.MatchString(cleaned) {
			return "", &domain.RefusalError{Reply: cleaned}
		}
	}
	return cleaned, nil
}

func stripFences(text string) string {
	if match := fencePattern.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	return text
}
