package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"qr-quiz-service/internal/app"
	"qr-quiz-service/internal/domain"
)

// WSHandler streams live leaderboards to websocket clients.
type WSHandler struct {
	service  *app.QuizService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			// Non-zero so the upgrade clears the server's write deadline.
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type filterPayload struct {
	QuizID string `json:"quizId"`
	Seq    uint64 `json:"seq"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type leaderboardPayload struct {
	Seq     uint64                    `json:"seq"`
	QuizID  string                    `json:"quizId"`
	Entries []domain.LeaderboardEntry `json:"entries"`
	Failed  bool                      `json:"failed"`
}

type errorPayload struct {
	Seq     uint64 `json:"seq"`
	Message string `json:"message"`
}

// ServeWS sends the board for ?quizId= ("" for all quizzes), pushes a fresh board after every
// accepted submission that affects it and switches filter on inbound "filter" messages.
// Responses to superseded filter requests are dropped.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	if quizID != "" {
		if _, err := h.service.Quiz(quizID); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancelCtx := context.WithCancel(r.Context())
	defer cancelCtx()

	send := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	var workers sync.WaitGroup

	var view app.LeaderboardView
	var unsubscribe func()

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	emit := func(msg outboundMessage) {
		select {
		case send <- msg:
		case <-closeSignals:
		}
	}
	// state must be the one committed by Resolve or Apply so seq and entries agree.
	emitView := func(state app.ViewState) {
		if state.Entries == nil {
			state.Entries = []domain.LeaderboardEntry{}
		}
		emit(outboundMessage{Type: "leaderboard", Payload: leaderboardPayload{
			Seq:     state.Request,
			QuizID:  state.QuizID,
			Entries: state.Entries,
			Failed:  state.Failed,
		}})
	}

	subscribe := func(filter string) {
		if unsubscribe != nil {
			unsubscribe()
		}
		updates, cancel := h.service.Hub().Subscribe(filter)
		unsubscribe = cancel

		workers.Add(1)
		go func() {
			defer workers.Done()
			for {
				select {
				case lb, ok := <-updates:
					if !ok {
						return
					}
					if state, ok := view.Apply(lb); ok {
						emitView(state)
					}
				case <-closeSignals:
					return
				}
			}
		}()
	}

	fetch := func(ticket app.Ticket) {
		workers.Add(1)
		go func() {
			defer workers.Done()
			lb, err := h.service.Leaderboard(ctx, ticket.QuizID)
			state, ok := view.Resolve(ticket, lb, err)
			if !ok {
				h.logger.Debug("discard stale leaderboard", zap.Uint64("seq", ticket.Seq), zap.String("quiz_id", ticket.QuizID))
				return
			}
			emitView(state)
		}()
	}

	// Subscribe before the first fetch so no submission slips between them.
	ticket := view.Begin(quizID, 0)
	subscribe(quizID)
	fetch(ticket)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "filter":
			var payload filterPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				emit(outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid filter payload"}})
				continue
			}
			if payload.QuizID != "" {
				if _, err := h.service.Quiz(payload.QuizID); err != nil {
					emit(outboundMessage{Type: "error", Payload: errorPayload{Seq: payload.Seq, Message: err.Error()}})
					continue
				}
			}
			ticket := view.Begin(payload.QuizID, payload.Seq)
			subscribe(payload.QuizID)
			fetch(ticket)
		default:
			emit(outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}

	close(closeSignals)
	unsubscribe()
	cancelCtx()
	workers.Wait()
	close(send)
	<-writerDone
}
