// Package llm adapts the external question generators to a single contract
// and normalizes what they return.
package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderManus  = "manus"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// DefaultOrder is the fallback order when no preference is given.
var DefaultOrder = []string{ProviderManus, ProviderOpenAI, ProviderGemini}

type Request struct {
	ExamName string
	ExamType string
	Count    int
	Domain   string
	// Prompt overrides the generated instruction when set.
	Prompt string
}

// Provider generates raw question records. Adapters never retry.
type Provider interface {
	Name() string
	Configured() bool
	Generate(ctx context.Context, req Request) ([]RawRecord, error)
}

const systemPrompt = "You are an expert AWS certification exam question writer. Generate accurate, realistic questions."

// responseFormat is appended to every chat prompt, custom ones included,
// so the reply stays decodable.
const responseFormat = `Return the response as a JSON array with this exact structure:
[
  {
    "question_text": "Question text here",
    "domain": "AWS service name",
    "difficulty": "medium",
    "options": [
      {"letter": "A", "text": "Option A text"},
      {"letter": "B", "text": "Option B text"},
      {"letter": "C", "text": "Option C text"},
      {"letter": "D", "text": "Option D text"}
    ],
    "correct_answer_letter": "A",
    "explanation": "Detailed explanation here"
  }
]`

// BuildPrompt returns the chat instruction for chat-completion style providers.
func BuildPrompt(req Request) string {
	if custom := strings.TrimSpace(req.Prompt); custom != "" {
		return custom + "\n\n" + responseFormat
	}
	domainContext := ""
	if req.Domain != "" {
		domainContext = " focusing on " + req.Domain
	}
	return fmt.Sprintf(`Generate %d multiple-choice questions for the %s certification exam%s.

For each question, provide:
1. A clear, relevant question text about AWS services, architectures, or best practices
2. Exactly 4 answer options labeled A, B, C, D
3. The correct answer letter (A, B, C, or D)
4. A detailed explanation of why the correct answer is correct
5. An AWS service domain (e.g., EC2, S3, Lambda, VPC, IAM, etc.)
6. A difficulty of easy, medium or hard

%s

Make questions realistic and aligned with AWS best practices and official exam content.`, req.Count, req.ExamName, domainContext, responseFormat)
}
