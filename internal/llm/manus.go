package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lshigami/certpool/config"
	"github.com/lshigami/certpool/internal/model"
)

type manusRequest struct {
	Prompt       string  `json:"prompt"`
	ExamType     string  `json:"exam_type"`
	NumQuestions int     `json:"num_questions"`
	Domain       *string `json:"domain"`
}

type manusProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewManusProvider(cfg *config.Config) Provider {
	return &manusProvider{
		apiKey: cfg.Generation.ManusApiKey,
		apiURL: strings.TrimRight(cfg.Generation.ManusApiURL, "/"),
		client: &http.Client{Timeout: timeoutOrDefault(cfg.Generation.ProviderTimeout)},
	}
}

func (p *manusProvider) Name() string { return ProviderManus }

func (p *manusProvider) Configured() bool { return p.apiKey != "" && p.apiURL != "" }

// ManusPrompt is the short instruction Manus expects, e.g.
// "generate 100 multiple choice questions for the solution architect".
func ManusPrompt(req Request) string {
	if strings.TrimSpace(req.Prompt) != "" {
		return req.Prompt
	}
	return fmt.Sprintf("generate %d multiple choice questions for the %s", req.Count, model.ExamTypeDisplayName(req.ExamType))
}

func (p *manusProvider) Generate(ctx context.Context, req Request) ([]RawRecord, error) {
	payload := manusRequest{
		Prompt:       ManusPrompt(req),
		ExamType:     req.ExamType,
		NumQuestions: req.Count,
	}
	if req.Domain != "" {
		payload.Domain = &req.Domain
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode manus request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/generate-questions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("build manus request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("manus request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read manus response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("manus returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	records, err := decodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("%w: manus: %v", ErrUnparseableResponse, err)
	}
	return records, nil
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 60 * time.Second
	}
	return d
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
