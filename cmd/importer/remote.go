package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/llm"
)

// apiImporter posts question files to a running server, which persists them
// and invalidates its own question ID cache.
type apiImporter struct {
	baseURL string
	client  *http.Client
}

func newAPIImporter(baseURL string) *apiImporter {
	return &apiImporter{baseURL: strings.TrimRight(baseURL, "/"), client: http.DefaultClient}
}

// examByType resolves the lowest-ID active exam of examType.
func (a *apiImporter) examByType(ctx context.Context, examType string) (*dto.ExamResponse, error) {
	var exams []dto.ExamResponse
	if err := a.do(ctx, http.MethodGet, "/api/v1/exams/by-type/"+url.PathEscape(examType), nil, http.StatusOK, &exams); err != nil {
		return nil, err
	}
	var first *dto.ExamResponse
	for i := range exams {
		if exams[i].IsActive && (first == nil || exams[i].ID < first.ID) {
			first = &exams[i]
		}
	}
	if first == nil {
		return nil, fmt.Errorf("no active exam of type %q on %s", examType, a.baseURL)
	}
	return first, nil
}

func (a *apiImporter) importFile(ctx context.Context, examType string, content []byte) (string, *dto.ImportQuestionsResponse, error) {
	// Decode locally so a malformed file fails before any request is sent.
	if _, err := llm.DecodeRecords(string(content)); err != nil {
		return "", nil, err
	}
	exam, err := a.examByType(ctx, examType)
	if err != nil {
		return "", nil, err
	}
	res, err := a.importQuestions(ctx, exam.ID, content)
	if err != nil {
		return "", nil, err
	}
	return exam.Name, res, nil
}

func (a *apiImporter) importQuestions(ctx context.Context, examID uint, body []byte) (*dto.ImportQuestionsResponse, error) {
	var resp dto.ImportQuestionsResponse
	path := fmt.Sprintf("/api/v1/admin/exams/%d/import", examID)
	if err := a.do(ctx, http.MethodPost, path, body, http.StatusCreated, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *apiImporter) do(ctx context.Context, method, path string, body []byte, want int, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != want {
		var apiErr dto.ErrorResponse
		if json.NewDecoder(res.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %d %s", method, path, res.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
