package stream_appointments

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/smilehub/clinic-booking/internal/api/handlers"
	"github.com/smilehub/clinic-booking/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	msgFeedUnavailable = "live updates are temporarily unavailable"
)

// Handler WebSocket лента записей для операторов
type Handler struct {
	service    AppointmentsService
	subscriber FeedSubscriber
	upgrader   websocket.Upgrader
	logger     Logger
}

func NewHandler(service AppointmentsService, subscriber FeedSubscriber, logger Logger) *Handler {
	return &Handler{
		service:    service,
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// доступ проверяется токеном оператора, а не Origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle GET /appointments/live
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Подписка до снимка, чтобы не потерять изменения между ними
	sub, err := h.subscriber.Subscribe(ctx)
	if err != nil {
		h.logger.Error("GET /appointments/live - Failed to subscribe to feed: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgFeedUnavailable)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("GET /appointments/live - Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	snapshot, err := h.service.Snapshot(ctx)
	if err != nil {
		h.logger.Error("GET /appointments/live - Failed to load snapshot: %v", err)
		closeWith(conn, websocket.CloseInternalServerErr, "snapshot failed")
		return
	}
	if err := writeJSON(conn, Message{Type: TypeSnapshot, Appointments: snapshot, At: time.Now()}); err != nil {
		h.logger.Warn("GET /appointments/live - Failed to send snapshot: %v", err)
		return
	}

	h.logger.Info("GET /appointments/live - Client connected: remote=%s, snapshot=%d", r.RemoteAddr, len(snapshot))

	readDone := make(chan struct{})
	go readPump(conn, readDone)

	h.writePump(ctx, conn, sub.Events(), readDone)
	h.logger.Info("GET /appointments/live - Client disconnected: remote=%s", r.RemoteAddr)
}

// writePump пересылает события клиенту и держит соединение живым ping-ами
func (h *Handler) writePump(ctx context.Context, conn *websocket.Conn, events <-chan domain.ChangeEvent, readDone <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			closeWith(conn, websocket.CloseGoingAway, "server shutting down")
			return
		case <-readDone:
			return
		case event, ok := <-events:
			if !ok {
				closeWith(conn, websocket.CloseGoingAway, "feed closed")
				return
			}
			if err := writeJSON(conn, FromChangeEvent(event)); err != nil {
				h.logger.Warn("GET /appointments/live - Failed to relay %s id=%s: %v", event.Type, event.ID, err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump читает управляющие сообщения клиента; входящие данные игнорируются
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeJSON(conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(writeWait))
}
