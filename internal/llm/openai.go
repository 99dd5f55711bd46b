package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lshigami/certpool/config"
	openai "github.com/sashabaranov/go-openai"
)

type openAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(cfg *config.Config) Provider {
	p := &openAIProvider{model: cfg.Generation.OpenAIModel}
	if p.model == "" {
		p.model = openai.GPT4oMini
	}
	if cfg.Generation.OpenAIApiKey == "" {
		return p
	}

	clientCfg := openai.DefaultConfig(cfg.Generation.OpenAIApiKey)
	if cfg.Generation.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.Generation.OpenAIBaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeoutOrDefault(cfg.Generation.ProviderTimeout)}
	p.client = openai.NewClientWithConfig(clientCfg)
	return p
}

func (p *openAIProvider) Name() string { return ProviderOpenAI }

func (p *openAIProvider) Configured() bool { return p.client != nil }

func (p *openAIProvider) Generate(ctx context.Context, req Request) ([]RawRecord, error) {
	if p.client == nil {
		return nil, errors.New("openai client not initialized")
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(req)},
		},
		Temperature: 0.7,
		MaxTokens:   4000,
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai returned no choices", ErrUnparseableResponse)
	}

	return DecodeRecords(resp.Choices[0].Message.Content)
}
