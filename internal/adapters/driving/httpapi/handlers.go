package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/normalisers"
)

// ContentRequest is the body of POST /api/content and POST /api/analyze.
// When MIMEType or URI is set the content is normalised before analysis.
type ContentRequest struct {
	Text     string   `json:"text"`
	MIMEType string   `json:"mime_type,omitempty"`
	URI      string   `json:"uri,omitempty"`
	Kinds    []string `json:"kinds,omitempty"`
}

// handleContent feeds the debounced analysis loop.
// POST /api/content
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeContent(w, r)
	if !ok {
		return
	}
	if !s.coordinator.Running() {
		respondError(w, http.StatusConflict, domain.ErrNotRunning)
		return
	}

	text, err := s.prose(r.Context(), req)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	s.coordinator.UpdateContent(text)
	respondJSONStatus(w, http.StatusAccepted, map[string]any{
		"accepted":   true,
		"word_count": len(strings.Fields(text)),
	})
}

// handleAnalyze runs an immediate analysis.
// POST /api/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeContent(w, r)
	if !ok {
		return
	}

	kinds := make([]domain.AnalysisKind, 0, len(req.Kinds))
	for _, raw := range req.Kinds {
		k := domain.AnalysisKind(strings.ToLower(strings.TrimSpace(raw)))
		if !k.IsValid() {
			respondError(w, http.StatusBadRequest, fmt.Errorf("%w: unknown analysis kind %q", domain.ErrInvalidInput, raw))
			return
		}
		kinds = append(kinds, k)
	}

	text, err := s.prose(r.Context(), req)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	results, err := s.coordinator.AnalyzeNow(r.Context(), text, kinds...)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, results)
}

// handleState returns the live analysis state.
// GET /api/state
func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, s.coordinator.State())
}

// POST /api/suggestions/{id}/accept
func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	s.resolve(w, r, s.coordinator.AcceptSuggestion)
}

// POST /api/suggestions/{id}/dismiss
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.resolve(w, r, s.coordinator.DismissSuggestion)
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request, apply func(id string) bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" || !apply(id) {
		respondError(w, http.StatusNotFound, fmt.Errorf("%w: suggestion %q", domain.ErrNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /healthz
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, map[string]any{
		"status":  "ok",
		"running": s.coordinator.Running(),
	})
}

// prose returns the text to analyze, normalising markup when asked to.
func (s *Server) prose(ctx context.Context, req ContentRequest) (string, error) {
	if req.MIMEType == "" && req.URI == "" {
		return req.Text, nil
	}
	if s.normalisers == nil {
		return "", fmt.Errorf("%w: no normalisers configured", domain.ErrUnsupportedType)
	}

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = normalisers.MIMETypeForPath(req.URI)
	}
	m, err := s.normalisers.Normalise(ctx, &domain.RawManuscript{
		URI:      req.URI,
		MIMEType: mimeType,
		Content:  []byte(req.Text),
	})
	if err != nil {
		return "", err
	}
	return m.Content, nil
}

func decodeContent(w http.ResponseWriter, r *http.Request) (ContentRequest, bool) {
	var req ContentRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, err)
			return req, false
		}
		respondError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput))
		return req, false
	}
	return req, true
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotRunning):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLLMUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
