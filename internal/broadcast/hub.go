package broadcast

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/gorilla/websocket"
)

const (
	defaultSendBuffer = 64
	defaultPingPeriod = 30 * time.Second
	writeWait         = 10 * time.Second
	maxMessageSize    = 1024
)

// Event is the envelope every subscriber receives.
type Event struct {
	Event    string    `json:"event"`
	RoomCode string    `json:"roomCode"`
	Payload  any       `json:"payload"`
	SentAt   time.Time `json:"sentAt"`
}

type Config struct {
	SendBuffer     int
	PingPeriod     time.Duration
	AllowedOrigins []string
}

// Hub fans events out to the subscribers of a room. Delivery is best effort:
// a subscriber whose buffer is full misses the event.
type Hub struct {
	log        *slog.Logger
	sendBuffer int
	pingPeriod time.Duration
	upgrader   websocket.Upgrader

	mu     sync.RWMutex
	rooms  map[string]map[*subscriber]struct{}
	closed bool
}

type subscriber struct {
	room string
	send chan []byte
}

func NewHub(log *slog.Logger, cfg Config) *Hub {
	h := &Hub{
		log:        log,
		sendBuffer: cfg.SendBuffer,
		pingPeriod: cfg.PingPeriod,
		rooms:      make(map[string]map[*subscriber]struct{}),
	}
	if h.sendBuffer <= 0 {
		h.sendBuffer = defaultSendBuffer
	}
	if h.pingPeriod <= 0 {
		h.pingPeriod = defaultPingPeriod
	}

	origins := slices.Clone(cfg.AllowedOrigins)
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(origins) == 0 {
				return true
			}
			return slices.Contains(origins, "*") || slices.Contains(origins, origin)
		},
	}

	return h
}

// Emit delivers the event to everyone currently in the room. It never blocks.
func (h *Hub) Emit(roomCode, event string, payload any) {
	const op = "Hub.Emit"

	msg, err := json.Marshal(Event{
		Event:    event,
		RoomCode: roomCode,
		Payload:  payload,
		SentAt:   time.Now().UTC(),
	})
	if err != nil {
		h.log.Error("failed to encode event",
			slog.String("op", op), slog.String("event", event), sl.Err(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for sub := range h.rooms[roomCode] {
		select {
		case sub.send <- msg:
		default:
			dropped++
		}
	}

	if dropped > 0 {
		h.log.Warn("slow subscribers missed event",
			slog.String("op", op),
			slog.String("room", roomCode),
			slog.String("event", event),
			slog.Int("dropped", dropped),
		)
	}
}

// Subscribe joins the room and returns the message stream plus a function that
// leaves it. The stream is closed on leave and on Close.
func (h *Hub) Subscribe(roomCode string) (<-chan []byte, func()) {
	sub := &subscriber{
		room: roomCode,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.send)
		return sub.send, func() {}
	}
	room := h.rooms[roomCode]
	if room == nil {
		room = make(map[*subscriber]struct{})
		h.rooms[roomCode] = room
	}
	room[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return sub.send, func() {
		once.Do(func() { h.unsubscribe(sub) })
	}
}

func (h *Hub) Subscribers(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[sub.room]
	if !ok {
		return
	}
	if _, ok := room[sub]; !ok {
		return
	}
	delete(room, sub)
	close(sub.send)
	if len(room) == 0 {
		delete(h.rooms, sub.room)
	}
}

// Close disconnects every subscriber. Later subscriptions get a closed stream.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for code, room := range h.rooms {
		for sub := range room {
			close(sub.send)
		}
		delete(h.rooms, code)
	}
}

// ServeWS upgrades the request and streams the room's events to the client
// until either side goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, roomCode string) {
	const op = "Hub.ServeWS"

	log := h.log.With(slog.String("op", op), slog.String("room", roomCode))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", sl.Err(err))
		return
	}

	stream, leave := h.Subscribe(roomCode)
	log.Debug("subscriber joined")

	go h.writePump(conn, stream)
	h.readPump(conn)

	leave()
	log.Debug("subscriber left")
}

func (h *Hub) writePump(conn *websocket.Conn, stream <-chan []byte) {
	ticker := time.NewTicker(h.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-stream:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// readPump discards client messages and keeps the read deadline alive on pong.
func (h *Hub) readPump(conn *websocket.Conn) {
	pongWait := h.pingPeriod * 10 / 9
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket closed unexpectedly", sl.Err(err))
			}
			return
		}
	}
}
