// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Clock: Time source for debounce and batch timers
//   - ConfigStore: Application configuration
//   - Normaliser: Turns chapter files into plain prose
//   - NormaliserRegistry: Selects appropriate normaliser
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Analysis history and suggestion feedback persistence
//   - PreferencesStore: Writer session and goal persistence
//   - SuggestionSource: Remote prose suggestions
//   - LLMService: Language model operations backing SuggestionSource
//   - AnalysisMetrics: Coordinator instrumentation
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
