package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/core/ports/driving"
	"github.com/custodia-labs/inkwell/internal/logger"
)

// Ensure Coordinator implements the interface.
var _ driving.AnalysisCoordinator = (*Coordinator)(nil)

// persistTimeout bounds each fire-and-forget history write.
const persistTimeout = 5 * time.Second

// Coordinator schedules analysis of changing content.
//
// Content changes are debounced into pending batches. A batch timer drains
// the queue in submission order, keeping at most MaxConcurrentAnalyses
// batches in flight. Completed batches only replace state if they are newer
// than the last applied batch, and nothing is applied after Stop.
type Coordinator struct {
	clock   driven.Clock
	runner  AnalysisRunner
	history driven.HistoryStore
	metrics driven.AnalysisMetrics

	mu          sync.Mutex
	config      domain.AnalysisConfig
	running     bool
	generation  uint64
	seq         uint64
	appliedSeq  uint64
	immediate   int
	latest      string
	queue       []*domain.AnalysisBatch
	debounce    driven.Timer
	batchTimer  driven.Timer
	runCtx      context.Context
	cancel      context.CancelFunc
	state       domain.AnalysisState
	goals       []domain.WritingGoal
	session     domain.Session
	subscribers map[int]chan domain.AnalysisState
	nextSubID   int

	// wg tracks in-flight batches; bg tracks history writes.
	wg sync.WaitGroup
	bg sync.WaitGroup
}

// NewCoordinator creates a stopped coordinator.
// history and metrics are optional.
func NewCoordinator(
	config domain.AnalysisConfig,
	runner AnalysisRunner,
	clock driven.Clock,
	history driven.HistoryStore,
	metrics driven.AnalysisMetrics,
) *Coordinator {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Coordinator{
		clock:       clock,
		runner:      runner,
		history:     history,
		metrics:     metrics,
		config:      config,
		state:       emptyState(false),
		subscribers: make(map[int]chan domain.AnalysisState),
	}
}

// Start activates the coordinator. Starting a running coordinator is a no-op.
// The coordinator stops processing when ctx is cancelled.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.config.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}

	c.running = true
	c.runCtx, c.cancel = context.WithCancel(ctx)
	c.state.Active = true
	gen := c.generation
	c.batchTimer = c.clock.AfterFunc(c.config.BatchInterval, func() { c.tick(gen) })

	logger.Debug("coordinator: started (debounce %s, interval %s)", c.config.Debounce, c.config.BatchInterval)
	c.publishLocked()
	return nil
}

// Stop deactivates the coordinator, drops queued work, waits for in-flight
// batches and history writes, and resets the state.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}

	c.running = false
	c.generation++
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	if c.batchTimer != nil {
		c.batchTimer.Stop()
		c.batchTimer = nil
	}
	c.queue = nil
	c.latest = ""
	c.cancel()
	c.state = emptyState(false)
	c.metrics.QueueDepth(0)
	c.publishLocked()
	c.mu.Unlock()

	c.wg.Wait()
	c.bg.Wait()
	logger.Debug("coordinator: stopped")
}

// Running returns true if the coordinator is active.
func (c *Coordinator) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// UpdateContent records new content and (re)arms the debounce timer.
// It is ignored while stopped or when analysis is disabled.
func (c *Coordinator) UpdateContent(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || !c.config.Enabled {
		return
	}

	c.latest = text
	if c.debounce != nil {
		c.debounce.Stop()
	}
	gen := c.generation
	c.debounce = c.clock.AfterFunc(c.config.Debounce, func() { c.enqueue(gen) })
}

// enqueue turns the latest content into a pending batch.
func (c *Coordinator) enqueue(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || gen != c.generation {
		return
	}

	c.seq++
	batch := &domain.AnalysisBatch{
		ID:        uuid.New().String(),
		Seq:       c.seq,
		Content:   c.latest,
		CreatedAt: c.clock.Now(),
		Origin:    domain.OriginUser,
		Priority:  domain.BatchPriorityNormal,
		Kinds:     []domain.AnalysisKind{domain.AnalysisAll},
		Status:    domain.BatchPending,
	}
	c.queue = append(c.queue, batch)
	c.debounce = nil
	c.state.PendingChanges++

	c.metrics.BatchQueued()
	c.metrics.QueueDepth(len(c.queue))
	logger.Debug("coordinator: queued batch %d (%d pending)", batch.Seq, len(c.queue))
	c.publishLocked()
}

// tick drains the queue and re-arms the batch timer.
func (c *Coordinator) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || gen != c.generation {
		return
	}

	c.dispatchLocked(gen)
	c.batchTimer = c.clock.AfterFunc(c.config.BatchInterval, func() { c.tick(gen) })
}

// dispatchLocked starts as many queued batches as the limits allow.
func (c *Coordinator) dispatchLocked(gen uint64) {
	available := c.config.MaxConcurrentAnalyses - c.state.ActiveAnalyses
	n := min(len(c.queue), c.config.MaxBatchSize, available)
	if n <= 0 {
		return
	}

	goals := slices.Clone(c.goals)
	for range n {
		batch := c.queue[0]
		c.queue = c.queue[1:]
		batch.Status = domain.BatchProcessing
		c.state.ActiveAnalyses++

		c.wg.Add(1)
		go c.execute(c.runCtx, gen, batch, goals)
	}

	c.state.Analyzing = true
	c.metrics.QueueDepth(len(c.queue))
	c.publishLocked()
}

// execute runs one batch and applies its results.
func (c *Coordinator) execute(ctx context.Context, gen uint64, batch *domain.AnalysisBatch, goals []domain.WritingGoal) {
	defer c.wg.Done()

	start := c.clock.Now()
	results, err := c.run(ctx, AnalysisRequest{Content: batch.Content, Kinds: batch.Kinds, Goals: goals})
	elapsed := c.clock.Now().Sub(start)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		logger.Debug("coordinator: discarding batch %d after stop", batch.Seq)
		return
	}

	c.state.ActiveAnalyses--
	if c.state.PendingChanges > 0 {
		c.state.PendingChanges--
	}
	c.state.Analyzing = c.state.ActiveAnalyses > 0 || c.immediate > 0

	if err != nil {
		batch.Status = domain.BatchFailed
		batch.Error = err.Error()
		c.state.LastError = batch.Error
		c.metrics.BatchFinished(string(domain.BatchFailed), elapsed)
		c.recordFailures(results)
		logger.Warn("coordinator: batch %d failed: %v", batch.Seq, err)
		c.publishLocked()
		return
	}

	batch.Status = domain.BatchCompleted
	batch.Results = results
	c.metrics.BatchFinished(string(domain.BatchCompleted), elapsed)
	c.recordFailures(results)

	if batch.Seq > c.appliedSeq {
		c.appliedSeq = batch.Seq
		c.applyLocked(batch.Content, results)
	} else {
		logger.Debug("coordinator: batch %d superseded by %d", batch.Seq, c.appliedSeq)
	}
	c.publishLocked()
}

// run calls the runner, converting a panic into an error.
func (c *Coordinator) run(ctx context.Context, req AnalysisRequest) (results *domain.AnalysisResults, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("%w: %w: %v", domain.ErrAnalysisFailed, domain.ErrAnalyzerPanic, r)
		}
	}()
	return c.runner.Run(ctx, req)
}

// AnalyzeNow analyzes text immediately. When running, the results replace the
// current state; stopped coordinators only return them.
func (c *Coordinator) AnalyzeNow(
	ctx context.Context,
	text string,
	kinds ...domain.AnalysisKind,
) (*domain.AnalysisResults, error) {
	c.mu.Lock()
	gen := c.generation
	running := c.running
	c.seq++
	seq := c.seq
	goals := slices.Clone(c.goals)
	if running {
		c.immediate++
		c.state.Analyzing = true
		c.publishLocked()
	}
	c.mu.Unlock()

	start := c.clock.Now()
	results, err := c.run(ctx, AnalysisRequest{Content: text, Kinds: kinds, Goals: goals})
	elapsed := c.clock.Now().Sub(start)

	status := domain.BatchCompleted
	if err != nil {
		status = domain.BatchFailed
	}
	c.metrics.BatchFinished(string(status), elapsed)
	c.recordFailures(results)

	if !running {
		return results, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return results, err
	}
	c.immediate--
	c.state.Analyzing = c.state.ActiveAnalyses > 0 || c.immediate > 0
	if err != nil {
		c.state.LastError = err.Error()
	} else if seq > c.appliedSeq {
		c.appliedSeq = seq
		c.applyLocked(text, results)
	}
	c.publishLocked()
	return results, err
}

// applyLocked copies successful kinds into state. Failed kinds keep their
// previous values and are reported in LastError.
func (c *Coordinator) applyLocked(content string, r *domain.AnalysisResults) {
	done := func(k domain.AnalysisKind) bool { return slices.Contains(r.Completed, k) }

	if done(domain.AnalysisStyle) {
		c.state.Style = r.Style
	}
	if done(domain.AnalysisReadability) {
		c.state.Readability = r.Readability
	}
	if done(domain.AnalysisGrammar) {
		c.state.Grammar = r.Grammar
		c.state.Clarity = r.Clarity
	}
	if done(domain.AnalysisGoals) {
		c.state.Goals = r.Goals
	}
	c.state.Suggestions = r.Inline
	c.state.LastContent = content
	c.state.LastAnalysis = c.clock.Now()
	c.state.Duration = r.Duration
	c.state.LastError = r.FailureSummary()

	c.saveRecordLocked(r)
}

func (c *Coordinator) recordFailures(r *domain.AnalysisResults) {
	if r == nil {
		return
	}
	for kind := range r.Failures {
		c.metrics.AnalyzerFailed(string(kind))
	}
}

// AcceptSuggestion removes a suggestion and counts it as accepted.
func (c *Coordinator) AcceptSuggestion(id string) bool {
	return c.resolve(id, domain.FeedbackAccepted)
}

// DismissSuggestion removes a suggestion and counts it as dismissed.
func (c *Coordinator) DismissSuggestion(id string) bool {
	return c.resolve(id, domain.FeedbackDismissed)
}

func (c *Coordinator) resolve(id string, action domain.FeedbackAction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := slices.IndexFunc(c.state.Suggestions, func(s domain.InlineSuggestion) bool { return s.ID == id })
	if idx < 0 {
		return false
	}

	suggestion := c.state.Suggestions[idx]
	c.state.Suggestions = slices.Delete(slices.Clone(c.state.Suggestions), idx, idx+1)
	if action == domain.FeedbackAccepted {
		c.state.Accepted++
	} else {
		c.state.Dismissed++
	}

	c.metrics.SuggestionFeedback(string(action))
	c.saveFeedbackLocked(suggestion, action)
	c.publishLocked()
	return true
}

// State returns a snapshot of the current state.
func (c *Coordinator) State() domain.AnalysisState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Subscribe streams state snapshots. Slow subscribers only see the latest snapshot.
func (c *Coordinator) Subscribe() (<-chan domain.AnalysisState, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan domain.AnalysisState, 1)
	c.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subscribers, id)
			close(ch)
		})
	}
}

// publishLocked sends the current state to every subscriber without blocking.
func (c *Coordinator) publishLocked() {
	if len(c.subscribers) == 0 {
		return
	}
	snapshot := c.state.Clone()
	for _, ch := range c.subscribers {
		select {
		case ch <- snapshot:
		default:
			// drop the stale snapshot and replace it
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// SetSession sets the project and chapter recorded with history.
func (c *Coordinator) SetSession(session domain.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

// SetGoals replaces the goals used by goal analysis.
func (c *Coordinator) SetGoals(goals []domain.WritingGoal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goals = slices.Clone(goals)
}

// Config returns the analysis configuration.
func (c *Coordinator) Config() domain.AnalysisConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Wait blocks until pending history writes have finished.
func (c *Coordinator) Wait() {
	c.bg.Wait()
}

func (c *Coordinator) saveRecordLocked(r *domain.AnalysisResults) {
	record := domain.AnalysisRecord{
		ID:              uuid.New().String(),
		ProjectID:       c.session.ProjectID,
		ChapterID:       c.session.ChapterID,
		SuggestionCount: len(r.Inline),
		Categories:      make(map[string]int),
		AcceptedCount:   c.state.Accepted,
		DismissedCount:  c.state.Dismissed,
		WordCount:       r.WordCount,
		Duration:        r.Duration,
		CreatedAt:       c.clock.Now(),
	}
	if s := c.state.Readability; s != nil {
		record.ReadabilityScore = s.FleschReadingEase
		record.GradeLevel = s.FleschKincaidGrade
	}
	if s := c.state.Style; s != nil {
		record.ConsistencyScore = s.Consistency.Score
	}
	if s := c.state.Clarity; s != nil {
		record.ClarityScore = s.OverallScore
	}
	for _, s := range r.Inline {
		record.Categories[string(s.Kind)]++
	}

	c.persist("save analysis record", func(ctx context.Context) error {
		return c.history.SaveAnalysisRecord(ctx, record)
	})
}

func (c *Coordinator) saveFeedbackLocked(s domain.InlineSuggestion, action domain.FeedbackAction) {
	feedback := domain.SuggestionFeedback{
		ID:           uuid.New().String(),
		SuggestionID: s.ID,
		ProjectID:    c.session.ProjectID,
		ChapterID:    c.session.ChapterID,
		Action:       action,
		Kind:         s.Kind,
		CreatedAt:    c.clock.Now(),
	}
	switch p := s.Payload.(type) {
	case domain.GrammarPayload:
		feedback.SuggestionType = string(p.Suggestion.Type)
		feedback.OriginalText = p.Suggestion.OriginalText
	case domain.StylePayload:
		feedback.SuggestionType = p.Recommendation.Category
	case domain.GoalPayload:
		feedback.SuggestionType = p.Progress.GoalID
	case domain.RemotePayload:
		feedback.SuggestionType = p.Suggestion.Type
		feedback.OriginalText = p.Suggestion.OriginalText
	}
	if action == domain.FeedbackAccepted {
		feedback.AppliedText = s.Preview
	}

	c.persist("record suggestion feedback", func(ctx context.Context) error {
		return c.history.RecordSuggestionFeedback(ctx, feedback)
	})
}

// persist runs a history write in the background. Failures are logged and dropped.
func (c *Coordinator) persist(what string, write func(ctx context.Context) error) {
	if c.history == nil {
		return
	}
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := write(ctx); err != nil {
			logger.Error("coordinator: %s: %v", what, err)
		}
	}()
}

func emptyState(active bool) domain.AnalysisState {
	return domain.AnalysisState{
		Active:      active,
		Grammar:     []domain.GrammarSuggestion{},
		Suggestions: []domain.InlineSuggestion{},
		Goals:       map[string]domain.GoalProgress{},
	}
}

// noopMetrics is used when no metrics recorder is configured.
type noopMetrics struct{}

func (noopMetrics) BatchQueued() {}
func (noopMetrics) BatchFinished(string, time.Duration) {}
func (noopMetrics) AnalyzerFailed(string) {}
func (noopMetrics) SuggestionFeedback(string) {}
func (noopMetrics) QueueDepth(int) {}
