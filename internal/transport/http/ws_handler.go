package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"smart-note-service/internal/app"
	"smart-note-service/internal/domain"
	"smart-note-service/internal/platform/logger"
)

// WSHandler lets a client take a quiz over a websocket: it answers and
// completes one attempt and receives every change to it.
type WSHandler struct {
	store    *app.Store
	log      *logger.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(store *app.Store, log *logger.Logger) *WSHandler {
	return &WSHandler{
		store: store,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string        `json:"questionId"`
	Answer     domain.Answer `json:"answer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS attaches to ?attemptId=, or starts a new attempt for ?quizId=.
// Nothing is written to the store unless the upgrade succeeds.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	attemptID := r.URL.Query().Get("attemptId")
	quizID := r.URL.Query().Get("quizId")
	if attemptID == "" && quizID == "" {
		http.Error(w, "missing attemptId or quizId", http.StatusBadRequest)
		return
	}
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, "websocket upgrade required", http.StatusBadRequest)
		return
	}

	var err error
	if attemptID == "" {
		_, err = h.store.Quiz(ctx, quizID)
	} else {
		_, err = h.store.Attempt(ctx, attemptID)
	}
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if attemptID == "" {
		attempt, err := h.store.CreateAttempt(ctx, quizID)
		if err != nil {
			_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
			return
		}
		attemptID = attempt.ID
	}

	updates, cancel, err := h.store.WatchAttempt(ctx, attemptID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()
	log := h.log.With("attempt_id", attemptID)
	log.Debug("ws attached")

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Only the writer goroutine touches conn for writing.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn("ws write error", "error", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case attempt, ok := <-updates:
				if !ok {
					return
				}
				if !enqueue(send, writerDone, outboundMessage[any]{Type: "attempt", Payload: attempt}) {
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	sendError := func(err error) bool {
		return enqueue(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
	}

read:
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		ok := true
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.QuestionID == "" || payload.Answer.IsZero() {
				ok = sendError(errors.New("invalid answer payload"))
				break
			}
			// The resulting attempt arrives through the watch channel.
			if _, err := h.store.SubmitAnswer(ctx, attemptID, payload.QuestionID, payload.Answer); err != nil {
				ok = sendError(err)
			}
		case "complete":
			if _, err := h.store.CompleteAttempt(ctx, attemptID); err != nil {
				ok = sendError(err)
				break
			}
			review, err := h.store.ReviewAttempt(ctx, attemptID)
			if err != nil {
				ok = sendError(err)
				break
			}
			ok = enqueue(send, writerDone, outboundMessage[any]{Type: "review", Payload: review})
		default:
			ok = sendError(errors.New("unsupported message type"))
		}
		if !ok {
			break read
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
	log.Debug("ws detached")
}

// enqueue hands msg to the writer. It reports false once the writer has
// stopped, so callers never block on a dead connection.
func enqueue(send chan<- outboundMessage[any], writerDone <-chan struct{}, msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-writerDone:
		return false
	}
}
