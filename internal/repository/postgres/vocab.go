package postgres

import (
	"database/sql"
	"fmt"

	"vocabsender/internal/domain"
)

// VocabRepo implements repository.VocabularyRepository backed by a
// PostgreSQL vocabulary table
type VocabRepo struct {
	db *sql.DB
}

// NewVocabRepo creates a new Postgres vocabulary repository
func NewVocabRepo(db *sql.DB) *VocabRepo {
	return &VocabRepo{db: db}
}

// LoadEntries returns the full vocabulary list in insertion order.
// Rows without a headword are excluded so indices stay stable across
// the selector's used-set.
func (r *VocabRepo) LoadEntries() ([]domain.Entry, error) {
	query := `
		SELECT headword, part_of_speech, translation, example
		FROM vocabulary
		WHERE headword <> ''
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.Headword, &e.PartOfSpeech, &e.Translation, &e.Example); err != nil {
			return nil, fmt.Errorf("scan vocabulary row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
