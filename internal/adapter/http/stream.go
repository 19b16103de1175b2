package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/logger"
	"github.com/flight-tracker/live-flight-tracker/internal/usecase"
)

const (
	// MessageTypeSnapshot tags every stream message.
	MessageTypeSnapshot = "snapshot"

	writeWait      = 10 * time.Second
	maxReadBytes   = 512
	clientQueueLen = 16
)

// Hub fans tracker snapshots out to connected WebSocket clients.
// A client that cannot keep up is disconnected rather than blocking the tracker.
type Hub struct {
	upgrader websocket.Upgrader
	log      *logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	clients map[*streamClient]struct{}
	closed  bool
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty Hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log:     logger.OrNop(log).WithComponent("stream"),
		now:     time.Now,
		clients: make(map[*streamClient]struct{}),
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues snap for every client. It never blocks.
func (h *Hub) Broadcast(snap usecase.Snapshot) {
	msg, err := h.encode(snap)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			h.log.Warn().Str("remote", client.conn.RemoteAddr().String()).Msg("slow stream client dropped")
			h.removeLocked(client)
		}
	}
}

// Serve upgrades the request, sends initial and then every broadcast
// snapshot, and returns when the client disconnects or the hub closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, initial usecase.Snapshot) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &streamClient{conn: conn, send: make(chan []byte, clientQueueLen)}
	if msg, err := h.encode(initial); err == nil {
		client.send <- msg
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("stream client connected")

	go h.writeLoop(client)

	conn.SetReadLimit(maxReadBytes)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.removeLocked(client)
	h.mu.Unlock()
	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("stream client disconnected")
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for client := range h.clients {
		h.removeLocked(client)
	}
}

func (h *Hub) writeLoop(client *streamClient) {
	defer client.conn.Close()

	for msg := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug().Err(err).Msg("stream write failed")
			return
		}
	}

	_ = client.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// removeLocked unregisters client and closes its queue, which ends its writer.
func (h *Hub) removeLocked(client *streamClient) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
}

func (h *Hub) encode(snap usecase.Snapshot) ([]byte, error) {
	return json.Marshal(StreamMessageDTO{
		Type:     MessageTypeSnapshot,
		Snapshot: ToSnapshotDTO(snap, h.now()),
		Flights:  ToFlightSummaryDTOs(snap.Flights, snap.SelectedNumber),
	})
}
