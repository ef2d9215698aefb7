package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for Inkwell resources.
	uriScheme = "inkwell://"

	historyLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "state",
		Name:        "state",
		Description: "Live analysis state: scores, suggestions and goal progress",
		MIMEType:    "application/json",
	}, s.handleStateResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "goals",
		Name:        "goals",
		Description: "The writer's goals",
		MIMEType:    "application/json",
	}, s.handleGoalsResource)

	// Template for chapter history.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{chapterId}",
		Name:        "chapter-history",
		Description: "Recent analysis records for a chapter",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleStateResource returns the coordinator's current state.
func (s *Server) handleStateResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, "state", s.ports.Coordinator.State())
}

// handleGoalsResource lists every goal.
func (s *Server) handleGoalsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Goals == nil {
		return jsonResource(req.Params.URI, "goals", []any{})
	}

	goals, err := s.ports.Goals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	return jsonResource(req.Params.URI, "goals", goals)
}

// handleHistoryResource returns recent records for a chapter.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract chapterId from URI: inkwell://history/{chapterId}
	chapterID := extractChapterID(req.Params.URI)
	if chapterID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.History.Recent(ctx, chapterID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	type recordInfo struct {
		ID          string         `json:"id"`
		Readability float64        `json:"readability_score"`
		Consistency float64        `json:"consistency_score"`
		Clarity     float64        `json:"clarity_score"`
		Suggestions int            `json:"suggestion_count"`
		Categories  map[string]int `json:"categories,omitempty"`
		WordCount   int            `json:"word_count"`
		CreatedAt   string         `json:"created_at"`
	}

	infos := make([]recordInfo, len(records))
	for i := range records {
		r := &records[i]
		infos[i] = recordInfo{
			ID:          r.ID,
			Readability: r.ReadabilityScore,
			Consistency: r.ConsistencyScore,
			Clarity:     r.ClarityScore,
			Suggestions: r.SuggestionCount,
			Categories:  r.Categories,
			WordCount:   r.WordCount,
			CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return jsonResource(req.Params.URI, "history", infos)
}

func jsonResource(uri, what string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractChapterID extracts the chapter ID from a URI like inkwell://history/{chapterId}.
func extractChapterID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
