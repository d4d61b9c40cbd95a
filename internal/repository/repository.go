package repository

import (
	"vocabsender/internal/domain"
)

// VocabularyRepository loads the vocabulary list for a run.
// Entries are indexed by their position in the returned slice.
type VocabularyRepository interface {
	LoadEntries() ([]domain.Entry, error)
}

// StateRepository persists sender state between runs
type StateRepository interface {
	Load() (*domain.State, error)
	Save(state *domain.State) error
}
