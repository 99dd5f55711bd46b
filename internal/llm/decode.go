package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnparseableResponse = errors.New("could not parse questions from provider response")

// DecodeRecords extracts question records from free-form model output. It
// accepts fenced code blocks, a bare array, an object with a "questions" array,
// a single object, or an array embedded in surrounding prose.
func DecodeRecords(content string) ([]RawRecord, error) {
	body := strings.TrimSpace(stripCodeFence(content))
	if body == "" {
		return nil, fmt.Errorf("%w: empty content", ErrUnparseableResponse)
	}

	if recs, err := decodeJSON([]byte(body)); err == nil {
		return recs, nil
	}

	start := strings.Index(body, "[")
	end := strings.LastIndex(body, "]")
	if start >= 0 && end > start {
		if recs, err := decodeJSON([]byte(body[start : end+1])); err == nil {
			return recs, nil
		}
	}

	preview := body
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return nil, fmt.Errorf("%w: %s", ErrUnparseableResponse, preview)
}

func decodeJSON(data []byte) ([]RawRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrUnparseableResponse
	}

	switch data[0] {
	case '[':
		var recs []RawRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, err
		}
		return recs, nil
	case '{':
		var wrapped struct {
			Questions []RawRecord `json:"questions"`
		}
		if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Questions != nil {
			return wrapped.Questions, nil
		}
		var single RawRecord
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, err
		}
		return []RawRecord{single}, nil
	default:
		return nil, ErrUnparseableResponse
	}
}

func stripCodeFence(content string) string {
	if i := strings.Index(content, "```json"); i >= 0 {
		rest := content[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return rest[:j]
		}
		return rest
	}
	if i := strings.Index(content, "```"); i >= 0 {
		rest := content[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			return rest[:j]
		}
		return rest
	}
	return content
}
