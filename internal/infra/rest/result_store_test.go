package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qr-quiz-service/internal/domain"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestInsertPostsRecord(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var got domain.ResultRecord

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/v1/quiz_results" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("apikey") != "secret" || r.Header.Get("Authorization") != "Bearer secret" {
			t.Fatalf("missing api key headers: %v", r.Header)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	store := NewResultStore(server.URL+"/", "secret", "", server.Client())
	err := store.Insert(context.Background(), domain.ResultRecord{
		UserID: "u1", UserName: "Alice", QuizID: "logic", QuizTag: "Logik", Score: 4, CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got.UserName != "Alice" || got.Score != 4 || got.QuizTag != "Logik" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestListBuildsFilterAndParsesRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("select") != resultColumns {
			t.Fatalf("select = %q", q.Get("select"))
		}
		if q.Get("user_id") != "eq.u1" || q.Get("order") != "created_at.desc" {
			t.Fatalf("unexpected query %v", q)
		}
		if q.Has("quiz_id") {
			t.Fatalf("quiz filter should be absent")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"user_id":"u1","user_name":"Alice","quiz_id":"logic","quiz_tag":"Logik","score":3,"created_at":"2025-03-01T12:00:00.123456+00:00"}]`))
	}))
	defer server.Close()

	store := NewResultStore(server.URL, "", "", server.Client())
	rows, err := store.List(context.Background(), domain.ResultQuery{UserID: "u1", NewestFirst: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Score != 3 || rows[0].CreatedAt.Year() != 2025 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestListReturnsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
	}))
	defer server.Close()

	store := NewResultStore(server.URL, "bad", "", server.Client())
	_, err := store.List(context.Background(), domain.ResultQuery{QuizID: "logic"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Invalid API key" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestTransportFailureIsBackendUnavailable(t *testing.T) {
	store := NewResultStore("http://backend.test", "", "", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial error")
		}),
	})

	err := store.Insert(context.Background(), domain.ResultRecord{UserName: "Alice"})
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}
