package domain

// Entry represents one vocabulary record
type Entry struct {
	Headword     string
	PartOfSpeech string
	Translation  string
	Example      string
}
