package server

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength    = 40
	maxEmojiLength   = 16
	maxSessionScores = 1000
	maxSubScores     = 20
	maxRosterSize    = 20
)

func validateName(label, name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxNameLength)
	}
	return trimmed, nil
}

func validateEmoji(emoji string) (string, error) {
	trimmed := strings.TrimSpace(emoji)
	if utf8.RuneCountInString(trimmed) > maxEmojiLength {
		return "", fmt.Errorf("emoji must be %d characters or fewer", maxEmojiLength)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
