// Package domain defines the core business entities for Inkwell.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AnalysisBatch: A scheduled unit of analysis over a content snapshot
//   - AnalysisState: The coordinator's authoritative analysis view
//   - InlineSuggestion: A positioned suggestion surfaced to the author
//   - WritingGoal: A user-defined target over writing metrics
//   - AnalysisRecord: A history entry saved after each analysis
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
