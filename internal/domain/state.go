package domain

import (
	"sort"
	"time"
)

// DateFormat is the ISO date form used for state keys and messages
const DateFormat = "2006-01-02"

// State holds everything the sender persists between runs:
// which vocabulary indices have been used, the last date a batch
// was sent, and which date+hour slots have already fired.
type State struct {
	Used      []int            `json:"used"`
	LastSent  string           `json:"last_sent"`
	SentHours map[string][]int `json:"sent_hours"`
}

// NewState returns an empty state
func NewState() *State {
	return &State{
		Used:      []int{},
		SentHours: map[string][]int{},
	}
}

// UsedSet returns the used indices as a set
func (s *State) UsedSet() map[int]struct{} {
	set := make(map[int]struct{}, len(s.Used))
	for _, i := range s.Used {
		set[i] = struct{}{}
	}
	return set
}

// SetUsed replaces the used indices with the given set, stored sorted
func (s *State) SetUsed(used map[int]struct{}) {
	indices := make([]int, 0, len(used))
	for i := range used {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	s.Used = indices
}

// HoursOn returns the set of hours already sent on the given date
func (s *State) HoursOn(date string) map[int]struct{} {
	set := make(map[int]struct{}, len(s.SentHours[date]))
	for _, h := range s.SentHours[date] {
		set[h] = struct{}{}
	}
	return set
}

// MarkSent records that a batch was sent on the given date and hour.
// Hours are only ever added within a run, stored sorted and deduplicated.
func (s *State) MarkSent(date string, hour int) {
	if s.SentHours == nil {
		s.SentHours = map[string][]int{}
	}
	hours := s.HoursOn(date)
	hours[hour] = struct{}{}
	sorted := make([]int, 0, len(hours))
	for h := range hours {
		sorted = append(sorted, h)
	}
	sort.Ints(sorted)
	s.SentHours[date] = sorted
	s.LastSent = date
}

// Prune drops sent-hour entries older than retentionDays before today.
// Today's entry is never pruned. Keys that do not parse as dates are
// left untouched.
func (s *State) Prune(today time.Time, retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	// ISO dates compare correctly as strings.
	cutoff := today.AddDate(0, 0, -retentionDays).Format(DateFormat)
	for key := range s.SentHours {
		if _, err := time.Parse(DateFormat, key); err != nil {
			continue
		}
		if key < cutoff {
			delete(s.SentHours, key)
		}
	}
}
