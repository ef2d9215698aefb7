package domain

// Severity ranks how urgently a suggestion should be surfaced.
type Severity string

// Severity levels, most urgent first.
const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
	SeverityInfo       Severity = "info"
)

// Rank returns the sort rank of the severity (error = 0 ... info = 3).
// Unknown severities sort after info.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeveritySuggestion:
		return 2
	case SeverityInfo:
		return 3
	default:
		return 4
	}
}

// IsValid returns true if the severity is recognised.
func (s Severity) IsValid() bool {
	return s.Rank() < 4
}

// String returns the string representation.
func (s Severity) String() string {
	return string(s)
}
