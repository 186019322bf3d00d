package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/syllaber/syllaber/internal/config"
)

type gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Gemini-backed generator. A missing credential file is
// not fatal: the service starts with generation disabled and every call
// returns ErrNoCredential until a key is provided and the service
// restarted.
func New(ctx context.Context, cfg *config.GeneratorConfig, logger *slog.Logger) (System, error) {
	g := &gemini{
		model:   cfg.Model,
		timeout: cfg.TimeoutDuration(),
		logger:  logger.With("system", "generate"),
	}

	key, err := loadKey(cfg.KeyFile)
	if err != nil {
		g.logger.Warn("generator disabled: credential unavailable", "key_file", cfg.KeyFile, "error", err)
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: key})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	g.client = client

	return g, nil
}

func (g *gemini) Ready() bool {
	return g.client != nil
}

func (g *gemini) Syllabus(ctx context.Context, req SyllabusRequest) (string, error) {
	return g.generate(ctx, syllabusPrompt(req))
}

func (g *gemini) TopicMapping(ctx context.Context, sourceText string) (string, error) {
	return g.generate(ctx, topicMappingPrompt(sourceText))
}

func (g *gemini) generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func loadKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("credential file %s is empty", path)
	}
	return key, nil
}
