package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
	"kudoswall/internal/logger"
	"kudoswall/internal/metrics"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans form events out to every owner connection watching that form.
type Hub struct {
	// formID -> connections
	conns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup

	metrics *metrics.Metrics
	log     *zap.SugaredLogger
}

// Connection represents a WebSocket connection
type Connection struct {
	FormID  string
	OwnerID string
	Send    chan []byte
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	FormID  string
	Message *Message
}

// NewHub creates a hub and starts its loop. Call Stop to end it.
func NewHub(m *metrics.Metrics) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		metrics:    m,
		log:        logger.GetLogger(),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.FormID] == nil {
				h.conns[conn.FormID] = make(map[*Connection]struct{})
			}
			h.conns[conn.FormID][conn] = struct{}{}
			h.mu.Unlock()
			h.metrics.WSConnections.Inc()
			h.log.Debugw("Owner connected to form feed", "formId", conn.FormID, "ownerId", conn.OwnerID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.FormID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					h.metrics.WSConnections.Dec()
					if len(set) == 0 {
						delete(h.conns, conn.FormID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Warnw("Failed to encode feed message", "formId", msg.FormID, "error", err)
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[msg.FormID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for formID, set := range h.conns {
		for conn := range set {
			close(conn.Send)
			h.metrics.WSConnections.Dec()
		}
		delete(h.conns, formID)
	}
}

// Register adds a connection. It reports false once the hub is stopped.
func (h *Hub) Register(conn *Connection) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Subscribers returns the number of connections watching formID.
func (h *Hub) Subscribers(formID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[formID])
}

// BroadcastToForm sends a message to every owner watching formID
// (implements service.Broadcaster). It never blocks the caller.
func (h *Hub) BroadcastToForm(formID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Warnw("Failed to encode feed payload", "formId", formID, "error", err)
		return
	}
	msg := &BroadcastMessage{
		FormID:  formID,
		Message: &Message{Type: MessageType(msgType), Payload: data},
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.log.Warnw("Feed broadcast queue full, dropping message", "formId", formID, "type", msgType)
	}
}

// Stop closes every connection and waits for the hub loop to exit.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
	h.wg.Wait()
}
