package progress

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected /ws subscriber.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub tracks every connected websocket client and fans out snapshots
// to all of them, matching the donor's realtime.Hub register/
// unregister channel shape but with a single broadcast stream instead
// of per-room routing -- there is only ever one run to watch.
type Hub struct {
	clients   map[*Client]struct{}
	register  chan *Client
	unregister chan *Client
	broadcast chan []byte
	mutex     sync.RWMutex
}

// NewHub returns a Hub; call Run in its own goroutine before Register.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run drives the hub's event loop until stop is closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = struct{}{}
			h.mutex.Unlock()

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.mutex.RLock()
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					log.Printf("progress: client send buffer full, dropping snapshot")
				}
			}
			h.mutex.RUnlock()

		case <-stop:
			return
		}
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Publish marshals snap and fans it out. Non-blocking: if the
// broadcast buffer is full the snapshot is dropped rather than
// stalling the caller (which, transitively, would stall a worker).
func (h *Hub) Publish(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("progress: marshaling snapshot: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Printf("progress: broadcast buffer full, dropping snapshot")
	}
}

// ClientCount reports how many websocket clients are currently
// registered. Safe for concurrent use.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
