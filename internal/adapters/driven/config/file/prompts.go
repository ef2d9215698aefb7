package file

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore serves the prompts sent to the LLM, read from editable
// text files in a prompt directory. The directory is populated with the
// built-in prompts on first Load. A missing file, or an edited file whose
// format verbs no longer match the built-in prompt, falls back to the
// built-in text so a bad edit cannot break remote suggestions.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// They seed the prompt directory and are used when a file cannot be read.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptWritingSuggestions: `You are an editor reviewing a passage of fiction. Suggest at most %d improvements.

Respond with ONLY a JSON object of the form {"suggestions": [...]}. Each suggestion must have:
- "title": a short label
- "description": what to change and why it helps the passage
- "category": one of "dialogue", "pacing", "description", "character", "structure"
- "confidence": a number between 0 and 1
- "original_text": optional, an exact quote from the passage the suggestion refers to
- "suggested_text": optional, a replacement for original_text

Passage:
%s

JSON:`,
}

// NewPromptStore creates a store over promptDir, defaulting to
// ~/.inkwell/prompts. No files are touched until the first Load.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".inkwell", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template called name.
func (s *PromptStore) Load(name string) (string, error) {
	builtin, known := defaultPrompts[name]

	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if known {
			return builtin, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	prompt, err := s.loadFromFile(name)
	switch {
	case err != nil && known:
		logger.Debug("prompts: %s: %v, using built-in prompt", name, err)
		prompt = builtin
	case err != nil:
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	case known && !slices.Equal(formatVerbs(prompt), formatVerbs(builtin)):
		logger.Warn("prompts: %s.txt must use the placeholders %s in that order, using built-in prompt",
			name, strings.Join(formatVerbs(builtin), " "))
		prompt = builtin
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory, writes any missing built-in
// prompts and a README.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// formatVerbs lists the fmt verbs in a template, ignoring %%.
func formatVerbs(tmpl string) []string {
	var verbs []string
	for i := 0; i < len(tmpl)-1; i++ {
		if tmpl[i] != '%' {
			continue
		}
		i++
		if tmpl[i] == '%' {
			continue
		}
		verbs = append(verbs, "%"+string(tmpl[i]))
	}
	return verbs
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Inkwell Prompts

This directory contains the prompts Inkwell sends to the configured LLM
when remote suggestions are enabled.

## Files

- ` + "`writing_suggestions.txt`" + ` - Asks the model for editorial suggestions as JSON

## Customisation

Edit a file to change the model's instructions. Changes take effect the next
time Inkwell starts.

## Format Placeholders

- ` + "`%d`" + ` - Maximum number of suggestions
- ` + "`%s`" + ` - The passage being analysed

Keep both placeholders, in that order, and keep the JSON response shape.
A file whose placeholders do not match is ignored and the built-in prompt
is used instead. Delete a file to restore the built-in prompt.
`
	return os.WriteFile(path, []byte(content), 0600)
}
