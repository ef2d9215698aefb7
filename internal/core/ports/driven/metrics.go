package driven

import "time"

// AnalysisMetrics receives coordinator instrumentation events.
// Implementations must be safe for concurrent use and must not block.
type AnalysisMetrics interface {
	// BatchQueued is called when a debounced change becomes a pending batch.
	BatchQueued()

	// BatchFinished is called when a batch or immediate analysis ends.
	BatchFinished(status string, duration time.Duration)

	// AnalyzerFailed is called once per failed analyzer kind.
	AnalyzerFailed(kind string)

	// SuggestionFeedback is called on accept or dismiss.
	SuggestionFeedback(action string)

	// QueueDepth reports the pending batch count after each change.
	QueueDepth(n int)
}
