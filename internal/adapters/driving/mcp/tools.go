package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// AnalyzeTextInput is the input schema for the analyze_text tool.
type AnalyzeTextInput struct {
	Text  string   `json:"text" jsonschema:"the prose to analyze"`
	Kinds []string `json:"kinds,omitempty" jsonschema:"analyses to run: style, grammar, goals, readability or all (default all)"`
}

// AnalyzeTextOutput is the output schema for the analyze_text tool.
type AnalyzeTextOutput struct {
	WordCount   int                `json:"word_count"`
	Completed   []string           `json:"completed"`
	Failures    map[string]string  `json:"failures,omitempty"`
	Readability *ReadabilityOutput `json:"readability,omitempty"`
	Style       *StyleOutput       `json:"style,omitempty"`
	Clarity     float64            `json:"clarity_score,omitempty"`
	Suggestions []SuggestionOutput `json:"suggestions"`
	Goals       []GoalOutput       `json:"goals,omitempty"`
}

// StyleOutput summarises a style report.
type StyleOutput struct {
	Complexity       string   `json:"complexity"`
	Tone             string   `json:"tone"`
	Voice            string   `json:"voice"`
	Perspective      string   `json:"perspective"`
	Tense            string   `json:"tense"`
	ConsistencyScore float64  `json:"consistency_score"`
	Recommendations  []string `json:"recommendations,omitempty"`
}

// SuggestionOutput is a single merged suggestion.
type SuggestionOutput struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Severity   string  `json:"severity"`
	Text       string  `json:"text"`
	Preview    string  `json:"preview,omitempty"`
	Line       int     `json:"line,omitempty"`
	Column     int     `json:"column,omitempty"`
	Confidence float64 `json:"confidence"`
}

// GoalOutput is the progress towards one goal.
type GoalOutput struct {
	Name     string `json:"name"`
	Progress int    `json:"progress"`
	Achieved bool   `json:"achieved"`
	Feedback string `json:"feedback"`
}

// TextInput is the input schema for single-text tools.
type TextInput struct {
	Text string `json:"text" jsonschema:"the prose to check"`
}

// GrammarOutput is the output schema for the check_grammar tool.
type GrammarOutput struct {
	Issues  []GrammarIssueOutput `json:"issues"`
	Count   int                  `json:"count"`
	Clarity float64              `json:"clarity_score"`
}

// GrammarIssueOutput is a single grammar finding.
type GrammarIssueOutput struct {
	Type          string  `json:"type"`
	Severity      string  `json:"severity"`
	Message       string  `json:"message"`
	OriginalText  string  `json:"original_text"`
	SuggestedText string  `json:"suggested_text,omitempty"`
	Explanation   string  `json:"explanation,omitempty"`
	Line          int     `json:"line"`
	Column        int     `json:"column"`
	Confidence    float64 `json:"confidence"`
}

// ReadabilityOutput is the output schema for the readability tool.
type ReadabilityOutput struct {
	FleschReadingEase         float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade        float64 `json:"flesch_kincaid_grade"`
	GunningFog                float64 `json:"gunning_fog"`
	SMOG                      float64 `json:"smog"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index"`
	GradeLevel                string  `json:"grade_level"`
	Sentences                 int     `json:"sentences"`
	Words                     int     `json:"words"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_text",
		Description: "Run style, grammar, readability and goal analysis over a passage",
	}, s.handleAnalyzeText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_grammar",
		Description: "Find spelling, grammar and clarity issues in a passage",
	}, s.handleCheckGrammar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "readability",
		Description: "Compute readability scores for a passage",
	}, s.handleReadability)
}

// handleAnalyzeText handles the analyze_text tool invocation.
func (s *Server) handleAnalyzeText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeTextInput,
) (*mcp.CallToolResult, AnalyzeTextOutput, error) {
	kinds, err := parseKinds(input.Kinds)
	if err != nil {
		return nil, AnalyzeTextOutput{}, err
	}

	results, err := s.ports.Coordinator.AnalyzeNow(ctx, input.Text, kinds...)
	if err != nil {
		return nil, AnalyzeTextOutput{}, err
	}

	output := AnalyzeTextOutput{
		WordCount:   results.WordCount,
		Completed:   make([]string, len(results.Completed)),
		Suggestions: make([]SuggestionOutput, len(results.Inline)),
	}
	for i, k := range results.Completed {
		output.Completed[i] = string(k)
	}
	if len(results.Failures) > 0 {
		output.Failures = make(map[string]string, len(results.Failures))
		for k, msg := range results.Failures {
			output.Failures[string(k)] = msg
		}
	}
	if results.Readability != nil {
		r := toReadabilityOutput(*results.Readability)
		output.Readability = &r
	}
	if results.Style != nil {
		output.Style = toStyleOutput(results.Style)
	}
	if results.Clarity != nil {
		output.Clarity = results.Clarity.OverallScore
	}
	for i, sg := range results.Inline {
		output.Suggestions[i] = SuggestionOutput{
			ID:         sg.ID,
			Kind:       string(sg.Kind),
			Severity:   string(sg.Severity),
			Text:       sg.Text,
			Preview:    sg.Preview,
			Line:       sg.Position.Line,
			Column:     sg.Position.Column,
			Confidence: sg.Confidence,
		}
	}
	for _, p := range results.Goals {
		output.Goals = append(output.Goals, GoalOutput{
			Name:     p.GoalName,
			Progress: p.Progress,
			Achieved: p.IsAchieved,
			Feedback: p.Feedback,
		})
	}

	return nil, output, nil
}

// handleCheckGrammar handles the check_grammar tool invocation.
func (s *Server) handleCheckGrammar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TextInput,
) (*mcp.CallToolResult, GrammarOutput, error) {
	results, err := s.analyzeKind(ctx, input.Text, domain.AnalysisGrammar)
	if err != nil {
		return nil, GrammarOutput{}, err
	}

	output := GrammarOutput{
		Issues: make([]GrammarIssueOutput, len(results.Grammar)),
		Count:  len(results.Grammar),
	}
	for i, g := range results.Grammar {
		output.Issues[i] = GrammarIssueOutput{
			Type:          string(g.Type),
			Severity:      string(g.Severity),
			Message:       g.Message,
			OriginalText:  g.OriginalText,
			SuggestedText: g.SuggestedText,
			Explanation:   g.Explanation,
			Line:          g.Position.Line,
			Column:        g.Position.Column,
			Confidence:    g.Confidence,
		}
	}
	if results.Clarity != nil {
		output.Clarity = results.Clarity.OverallScore
	}

	return nil, output, nil
}

// handleReadability handles the readability tool invocation.
func (s *Server) handleReadability(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TextInput,
) (*mcp.CallToolResult, ReadabilityOutput, error) {
	results, err := s.analyzeKind(ctx, input.Text, domain.AnalysisReadability)
	if err != nil {
		return nil, ReadabilityOutput{}, err
	}
	if results.Readability == nil {
		return nil, ReadabilityOutput{}, nil
	}
	return nil, toReadabilityOutput(*results.Readability), nil
}

// analyzeKind runs a single analysis and fails if it did not complete.
func (s *Server) analyzeKind(
	ctx context.Context,
	text string,
	kind domain.AnalysisKind,
) (*domain.AnalysisResults, error) {
	results, err := s.ports.Coordinator.AnalyzeNow(ctx, text, kind)
	if err != nil {
		return nil, err
	}
	if msg, ok := results.Failures[kind]; ok {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrAnalysisFailed, kind, msg)
	}
	if !s.ports.Coordinator.Config().KindEnabled(kind) {
		return nil, fmt.Errorf("%s analysis is disabled", kind)
	}
	return results, nil
}

// parseKinds converts tool input into analysis kinds.
func parseKinds(raw []string) ([]domain.AnalysisKind, error) {
	kinds := make([]domain.AnalysisKind, 0, len(raw))
	var errs []error
	for _, r := range raw {
		k := domain.AnalysisKind(strings.ToLower(strings.TrimSpace(r)))
		if !k.IsValid() {
			errs = append(errs, fmt.Errorf("%w: unknown analysis kind %q", domain.ErrInvalidInput, r))
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds, errors.Join(errs...)
}

func toReadabilityOutput(r domain.ReadabilityScores) ReadabilityOutput {
	return ReadabilityOutput{
		FleschReadingEase:         r.FleschReadingEase,
		FleschKincaidGrade:        r.FleschKincaidGrade,
		GunningFog:                r.GunningFog,
		SMOG:                      r.SMOG,
		AutomatedReadabilityIndex: r.AutomatedReadabilityIndex,
		GradeLevel:                r.GradeLevel,
		Sentences:                 r.Sentences,
		Words:                     r.Words,
	}
}

func toStyleOutput(r *domain.StyleAnalysisResult) *StyleOutput {
	out := &StyleOutput{
		Complexity:       string(r.Complexity),
		Tone:             r.Tone.Primary,
		Voice:            string(r.Voice.Voice),
		Perspective:      string(r.Voice.Perspective),
		Tense:            string(r.Voice.Tense),
		ConsistencyScore: r.Consistency.Score,
	}
	for _, rec := range r.Recommendations {
		out.Recommendations = append(out.Recommendations, rec.Description)
	}
	return out
}
