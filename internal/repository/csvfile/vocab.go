package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"vocabsender/internal/domain"
)

// VocabRepo implements repository.VocabularyRepository backed by a CSV
// file with columns es, pos, de, example
type VocabRepo struct {
	path string
}

// NewVocabRepo creates a new CSV vocabulary repository
func NewVocabRepo(path string) *VocabRepo {
	return &VocabRepo{path: path}
}

// LoadEntries reads the whole CSV file.
// Rows without a headword are discarded. Short rows are padded so a
// missing trailing column reads as an empty string.
func (r *VocabRepo) LoadEntries() ([]domain.Entry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("vocabulary file %s is empty", r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read vocabulary header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	if _, ok := cols["es"]; !ok {
		return nil, fmt.Errorf("vocabulary file %s has no es column", r.path)
	}

	var entries []domain.Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read vocabulary row: %w", err)
		}

		headword := field(record, cols, "es")
		if headword == "" {
			continue
		}

		entries = append(entries, domain.Entry{
			Headword:     headword,
			PartOfSpeech: field(record, cols, "pos"),
			Translation:  field(record, cols, "de"),
			Example:      field(record, cols, "example"),
		})
	}

	return entries, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
