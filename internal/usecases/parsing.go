package usecases

import (
	"errors"
	"strings"
)

// SEPARATOR frames the rapport body when the model adds chatter around it.
const SEPARATOR = "|||RAPPORT|||"

var ErrEmptyRapport = errors.New("ai returned an empty rapport")

// ParseRapportResponse extracts the rapport text from the model answer.
func ParseRapportResponse(response string) (string, error) {
	text := response

	if strings.Contains(response, SEPARATOR) {
		parts := strings.SplitN(response, SEPARATOR, 3)
		text = parts[1]
	}

	text = strings.TrimSpace(text)
	for _, prefix := range []string{"Rapport:", "Report:"} {
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = strings.TrimSpace(text[len(prefix):])
		}
	}

	if text == "" {
		return "", ErrEmptyRapport
	}
	return text, nil
}
