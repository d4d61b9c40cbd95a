package testutil

import (
	"fmt"

	"vocabsender/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestEntry creates a test vocabulary entry
func NewTestEntry(headword, pos, translation, example string) domain.Entry {
	return domain.Entry{
		Headword:     headword,
		PartOfSpeech: pos,
		Translation:  translation,
		Example:      example,
	}
}

// NewTestEntries creates n numbered test entries
func NewTestEntries(n int) []domain.Entry {
	entries := make([]domain.Entry, n)
	for i := range entries {
		entries[i] = domain.Entry{
			Headword:     fmt.Sprintf("palabra%d", i),
			PartOfSpeech: "n",
			Translation:  fmt.Sprintf("wort%d", i),
			Example:      fmt.Sprintf("Ejemplo %d.", i),
		}
	}
	return entries
}

// NewTestState creates a state with the given used indices and
// sent-hours ledger
func NewTestState(used []int, sentHours map[string][]int) *domain.State {
	state := domain.NewState()
	if used != nil {
		state.Used = used
	}
	if sentHours != nil {
		state.SentHours = sentHours
	}
	return state
}
