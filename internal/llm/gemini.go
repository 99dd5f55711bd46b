package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/certpool/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiProvider also owns the underlying client, which must be closed on shutdown.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
	// generate is swapped in tests.
	generate func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

func NewGeminiProvider(cfg *config.Config) (*GeminiProvider, error) {
	if cfg.Generation.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Gemini provider will be skipped.")
		return &GeminiProvider{}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Generation.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	name := cfg.Generation.GeminiModel
	if name == "" {
		name = "gemini-1.5-flash"
	}
	m := client.GenerativeModel(name)
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(8192)
	m.ResponseMIMEType = "application/json"
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	p := &GeminiProvider{client: client, model: m}
	p.generate = func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
		return p.model.GenerateContent(ctx, genai.Text(prompt))
	}
	return p, nil
}

func (p *GeminiProvider) Name() string { return ProviderGemini }

func (p *GeminiProvider) Configured() bool { return p.generate != nil }

func (p *GeminiProvider) Generate(ctx context.Context, req Request) ([]RawRecord, error) {
	if p.generate == nil {
		return nil, errors.New("gemini client not initialized")
	}

	resp, err := p.generate(ctx, BuildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("%w: gemini returned no content", ErrUnparseableResponse)
	}
	return DecodeRecords(text)
}

func (p *GeminiProvider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
