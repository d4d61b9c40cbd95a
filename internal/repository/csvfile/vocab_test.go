package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"vocabsender/internal/domain"

	"github.com/stretchr/testify/assert"
)

func writeVocabFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.csv")
	err := os.WriteFile(path, []byte(content), 0o600)
	assert.NoError(t, err)
	return path
}

func TestVocabRepo_LoadEntries(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		expected      []domain.Entry
		expectedError bool
	}{
		{
			name:    "full rows",
			content: "es,pos,de,example\nhola,interj,hallo,¡Hola!\ncorrer,v,laufen,Me gusta correr.\n",
			expected: []domain.Entry{
				{Headword: "hola", PartOfSpeech: "interj", Translation: "hallo", Example: "¡Hola!"},
				{Headword: "correr", PartOfSpeech: "v", Translation: "laufen", Example: "Me gusta correr."},
			},
		},
		{
			name:    "rows without headword are dropped",
			content: "es,pos,de,example\nhola,interj,hallo,¡Hola!\n,adj,leer,\n",
			expected: []domain.Entry{
				{Headword: "hola", PartOfSpeech: "interj", Translation: "hallo", Example: "¡Hola!"},
			},
		},
		{
			name:    "short rows read missing columns as empty",
			content: "es,pos,de,example\nhola,interj\n",
			expected: []domain.Entry{
				{Headword: "hola", PartOfSpeech: "interj"},
			},
		},
		{
			name:    "columns matched by header position",
			content: "de,es,pos,example\nhallo,hola,interj,¡Hola!\n",
			expected: []domain.Entry{
				{Headword: "hola", PartOfSpeech: "interj", Translation: "hallo", Example: "¡Hola!"},
			},
		},
		{
			name:     "header only",
			content:  "es,pos,de,example\n",
			expected: nil,
		},
		{
			name:          "empty file",
			content:       "",
			expectedError: true,
		},
		{
			name:          "missing es column",
			content:       "word,pos,de,example\nhola,interj,hallo,x\n",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewVocabRepo(writeVocabFile(t, tt.content))

			entries, err := repo.LoadEntries()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, entries)
			}
		})
	}
}

func TestVocabRepo_LoadEntries_MissingFile(t *testing.T) {
	repo := NewVocabRepo(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := repo.LoadEntries()

	assert.Error(t, err)
}
