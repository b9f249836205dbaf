// Package rest talks to a hosted PostgREST-style table API (for example Supabase)
// that owns the quiz_results table.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"qr-quiz-service/internal/domain"
)

const (
	defaultTable   = "quiz_results"
	resultColumns  = "user_id,user_name,quiz_id,quiz_tag,score,created_at"
	maxErrorLength = 512
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("backend request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend request failed with status %d: %s", e.StatusCode, e.Message)
}

// ResultStore implements app.ResultRepository over HTTP.
type ResultStore struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
}

func NewResultStore(baseURL, apiKey, table string, httpClient *http.Client) *ResultStore {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if table == "" {
		table = defaultTable
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &ResultStore{
		baseURL:    baseURL,
		apiKey:     apiKey,
		table:      table,
		httpClient: httpClient,
	}
}

func (s *ResultStore) Insert(ctx context.Context, record domain.ResultRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}
	req, err := s.newRequest(ctx, http.MethodPost, s.tableURL(nil), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	return s.do(req, nil)
}

func (s *ResultStore) List(ctx context.Context, query domain.ResultQuery) ([]domain.ResultRecord, error) {
	params := url.Values{}
	params.Set("select", resultColumns)
	if query.QuizID != "" {
		params.Set("quiz_id", "eq."+query.QuizID)
	}
	if query.UserID != "" {
		params.Set("user_id", "eq."+query.UserID)
	}
	if query.NewestFirst {
		params.Set("order", "created_at.desc")
	}

	req, err := s.newRequest(ctx, http.MethodGet, s.tableURL(params), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var rows []domain.ResultRecord
	if err := s.do(req, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.ResultRecord{}
	}
	return rows, nil
}

func (s *ResultStore) tableURL(params url.Values) string {
	u := s.baseURL + "/rest/v1/" + url.PathEscape(s.table)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (s *ResultStore) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	return req, nil
}

func (s *ResultStore) do(req *http.Request, out any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// readErrorMessage prefers the "message" field PostgREST puts in error bodies.
func readErrorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorLength))
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(raw))
}
