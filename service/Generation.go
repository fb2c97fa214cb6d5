package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"flyer/config"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

const (
	geminiDefaultModel = "gemini-1.5-flash"
	openAIDefaultModel = openai.GPT3Dot5Turbo
)

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator builds the generator selected by cfg.Provider.
func NewGenerator(cfg config.AIConfig) (Generator, error) {
	if cfg.Provider == "" {
		cfg.Provider = config.ProviderGemini
	}
	if cfg.Provider != config.ProviderOpenAI && cfg.Provider != config.ProviderGemini {
		return nil, errors.Errorf("unknown AI provider %q", cfg.Provider)
	}
	if strings.TrimSpace(cfg.APIKey()) == "" {
		return nil, errors.Errorf("no API key configured for AI provider %s", cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		g, err := NewOpenAIGenerator(cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		g, err := NewGeminiGenerator(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator calls the OpenAI chat completions API.
type OpenAIGenerator struct {
	client  chatCompleter
	model   string
	timeout time.Duration
}

func NewOpenAIGenerator(cfg config.AIConfig) (*OpenAIGenerator, error) {
	apiKey := strings.TrimSpace(cfg.OpenAIAPIKey)
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openAIDefaultModel
	}

	return &OpenAIGenerator{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		slog.Error("openai_generate_failed", "model", g.model, "error", err)
		return "", errors.Wrapf(ErrUpstreamGenerationFailed, "openai: %v", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.Wrap(ErrUpstreamGenerationFailed, "openai: no choices in response")
	}
	return checkText("openai", resp.Choices[0].Message.Content)
}

type geminiModelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGeminiClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// GeminiGenerator calls the Google Gemini API.
type GeminiGenerator struct {
	models  geminiModelsClient
	model   string
	timeout time.Duration
}

func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig) (*GeminiGenerator, error) {
	apiKey := strings.TrimSpace(cfg.GeminiAPIKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	client, err := newGeminiClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	model := cfg.Model
	if model == "" {
		model = geminiDefaultModel
	}

	slog.Debug("gemini_generator_ready", "model", model)
	return &GeminiGenerator{
		models:  client.Models,
		model:   model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		slog.Error("gemini_generate_failed", "model", g.model, "error", err)
		return "", errors.Wrapf(ErrUpstreamGenerationFailed, "gemini: %v", err)
	}
	return checkText("gemini", geminiText(resp))
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func checkText(provider, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.Wrapf(ErrUpstreamGenerationFailed, "%s: empty response", provider)
	}
	return text, nil
}

// withTimeout applies d unless ctx already carries a deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok || d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
