package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"vocabsender/internal/domain"
)

// ErrVocabularyTooSmall is returned when the vocabulary list holds
// fewer entries than the requested batch size
var ErrVocabularyTooSmall = errors.New("vocabulary list is smaller than the requested word count")

// Selector picks unseen vocabulary entries, tracking usage through an
// index set the caller persists between runs
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector seeded from the clock
func NewSelector() *Selector {
	return NewSelectorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewSelectorWithSource creates a selector with an explicit entropy
// source, so tests can make the draw deterministic
func NewSelectorWithSource(src rand.Source) *Selector {
	return &Selector{rng: rand.New(src)}
}

// Pick draws n distinct entries uniformly from the indices not yet in
// used. When fewer than n indices remain the used-set is reset and the
// draw starts over from the full list. The returned entries are in draw
// order, and the returned set is the old used-set plus the drawn
// indices (just the drawn indices after a reset). The caller's set is
// not modified.
func (s *Selector) Pick(entries []domain.Entry, used map[int]struct{}, n int) ([]domain.Entry, map[int]struct{}, error) {
	if n < 1 {
		return nil, nil, fmt.Errorf("word count must be positive, got %d", n)
	}
	total := len(entries)
	if total < n {
		return nil, nil, fmt.Errorf("%w: have %d, need %d", ErrVocabularyTooSmall, total, n)
	}

	newUsed := make(map[int]struct{}, len(used)+n)
	for i := range used {
		if i >= 0 && i < total {
			newUsed[i] = struct{}{}
		}
	}

	available := make([]int, 0, total)
	for i := 0; i < total; i++ {
		if _, ok := newUsed[i]; !ok {
			available = append(available, i)
		}
	}

	// Reset when exhausted.
	if len(available) < n {
		newUsed = make(map[int]struct{}, n)
		available = available[:0]
		for i := 0; i < total; i++ {
			available = append(available, i)
		}
	}

	s.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	chosen := make([]domain.Entry, 0, n)
	for _, idx := range available[:n] {
		chosen = append(chosen, entries[idx])
		newUsed[idx] = struct{}{}
	}

	return chosen, newUsed, nil
}
