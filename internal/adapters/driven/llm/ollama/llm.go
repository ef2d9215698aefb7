// Package ollama provides an LLM service adapter for a local Ollama server.
package ollama

import (
	"context"
	"net/http"
	"time"

	"github.com/custodia-labs/inkwell/internal/adapters/driven/llm/httpjson"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultLLMModel   = "llama3.2"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig configures the Ollama adapter. Zero fields take the defaults.
type LLMConfig struct {
	BaseURL string
	Model   string

	// Timeout is generous because a local model may be loaded into
	// memory on the first request.
	Timeout time.Duration
}

// LLMService generates text with /api/generate.
type LLMService struct {
	api   *httpjson.Client
	model string
}

type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	System  string   `json:"system,omitempty"`
	Stream  bool     `json:"stream"`
	Format  string   `json:"format,omitempty"`
	Options *options `json:"options,omitempty"`
}

type options struct {
	NumPredict  int      `json:"num_predict,omitempty"`
	Temperature float64  `json:"temperature,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewLLMService creates an Ollama adapter.
func NewLLMService(cfg LLMConfig) *LLMService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		api: &httpjson.Client{
			Provider: "ollama",
			BaseURL:  cfg.BaseURL,
			HTTP:     &http.Client{Timeout: cfg.Timeout},
		},
		model: cfg.Model,
	}
}

// Generate completes prompt without streaming. JSON maps onto format=json.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	req := generateRequest{
		Model:  s.model,
		Prompt: prompt,
		System: opts.System,
	}
	if opts.JSON {
		req.Format = "json"
	}
	if opts.MaxTokens != 0 || opts.Temperature != 0 || len(opts.StopWords) > 0 {
		req.Options = &options{NumPredict: opts.MaxTokens, Temperature: opts.Temperature, Stop: opts.StopWords}
	}

	var resp generateResponse
	if err := s.api.Post(ctx, "/api/generate", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

func (s *LLMService) ModelName() string {
	return s.model
}

// Ping lists installed models via /api/tags.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/api/tags")
}

func (s *LLMService) Close() error {
	return nil
}
