package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"qr-quiz-service/internal/app"
	"qr-quiz-service/internal/domain"
	"qr-quiz-service/internal/infra/memory"
)

func TestWebSocketLeaderboardFlow(t *testing.T) {
	srv, service := newTestServer(t, memory.NewResultStore(), Options{})
	conn := dialLeaderboard(t, srv, "")

	initial := readLeaderboard(t, conn, func(p leaderboardPayload) bool { return true })
	if initial.QuizID != "" || len(initial.Entries) != 0 {
		t.Fatalf("unexpected initial board %+v", initial)
	}

	alice := app.NewKVIdentity(memory.NewKeyValue())
	if err := alice.SetUserName(context.Background(), "alice"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if _, err := service.Complete(context.Background(), alice, "logic", domain.AnswerSelection{0: 2, 1: 3}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	pushed := readLeaderboard(t, conn, func(p leaderboardPayload) bool { return len(p.Entries) == 1 })
	if pushed.Entries[0].UserName != "alice" || pushed.Entries[0].TotalScore != 2 {
		t.Fatalf("unexpected pushed board %+v", pushed)
	}

	filter := map[string]any{"type": "filter", "payload": map[string]any{"quizId": "sports", "seq": 7}}
	if err := conn.WriteJSON(filter); err != nil {
		t.Fatalf("write filter: %v", err)
	}
	sports := readLeaderboard(t, conn, func(p leaderboardPayload) bool { return p.Seq == 7 })
	if sports.QuizID != "sports" || len(sports.Entries) != 0 {
		t.Fatalf("unexpected sports board %+v", sports)
	}
}

func TestWebSocketRejectsUnknownFilter(t *testing.T) {
	srv, _ := newTestServer(t, memory.NewResultStore(), Options{})
	conn := dialLeaderboard(t, srv, "")
	readLeaderboard(t, conn, func(p leaderboardPayload) bool { return true })

	filter := map[string]any{"type": "filter", "payload": map[string]any{"quizId": "history", "seq": 3}}
	if err := conn.WriteJSON(filter); err != nil {
		t.Fatalf("write filter: %v", err)
	}

	var msg struct {
		Type    string       `json:"type"`
		Payload errorPayload `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "error" || msg.Payload.Seq != 3 || msg.Payload.Message != domain.ErrQuizNotFound.Error() {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestWebSocketUnknownQuizQuery(t *testing.T) {
	srv, _ := newTestServer(t, memory.NewResultStore(), Options{})

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/leaderboard?quizId=history"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != 404 {
		t.Fatalf("expected 404 response, got %+v", resp)
	}
}

func dialLeaderboard(t *testing.T, srv *httptest.Server, quizID string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/leaderboard?quizId=" + quizID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readLeaderboard skips messages until one satisfies match.
func readLeaderboard(t *testing.T, conn *websocket.Conn, match func(leaderboardPayload) bool) leaderboardPayload {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		var msg struct {
			Type    string             `json:"type"`
			Payload leaderboardPayload `json:"payload"`
		}
		_ = conn.SetReadDeadline(deadline)
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read json: %v", err)
		}
		if msg.Type == "leaderboard" && match(msg.Payload) {
			return msg.Payload
		}
	}
}
