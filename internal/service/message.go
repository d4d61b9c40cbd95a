package service

import (
	"fmt"
	"strings"

	"vocabsender/internal/domain"
)

// FormatMessage renders the daily batch. Entries are numbered in input
// order; the date closes the message so the word lines lead it.
func FormatMessage(entries []domain.Entry, date string) string {
	lines := []string{"📚 Palabras del día:"}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("\n%d. %s [%s] — %s\n   ↪ Ej.: %s",
			i+1, e.Headword, e.PartOfSpeech, e.Translation, e.Example))
	}
	lines = append(lines, fmt.Sprintf("\n¡Ánimo! 💪 (%s)", date))
	return strings.Join(lines, "\n")
}
