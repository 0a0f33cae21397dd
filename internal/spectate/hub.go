// Package spectate streams simulation snapshots to websocket viewers. It is
// a read-only sim frontend: viewers can watch but never steer.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"matatu/internal/sim"
)

const writeWait = 10 * time.Second

type snapshotMessage struct {
	Type string `json:"type"`
	sim.Snapshot
}

type resultMessage struct {
	Type    string      `json:"type"`
	Outcome sim.Outcome `json:"outcome"`
	Score   int         `json:"score"`
	Ticks   int         `json:"ticks"`
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// goodbye sends a normal close frame and drops the connection.
func (s *subscriber) goodbye() {
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "simulation over")
	s.mu.Lock()
	s.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
	s.mu.Unlock()
	s.conn.Close()
}

// Hub fans encoded snapshots out to every connected viewer. The tick loop
// only ever hands data to a one-slot mailbox; a broadcaster goroutine does
// the network writes, so slow viewers drop frames instead of stalling ticks.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	latest      []byte
	stopped     bool // viewers were disconnected; no new ones are taken
	nextID      atomic.Uint64

	pending chan []byte
	quit    chan struct{}
	done    chan struct{}
	closed  sync.Once

	upgrader websocket.Upgrader
}

// NewHub starts the broadcaster. Call Close to stop it.
func NewHub() *Hub {
	h := &Hub{
		subscribers: make(map[uint64]*subscriber),
		pending:     make(chan []byte, 1),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.done)
	for {
		select {
		case data := <-h.pending:
			h.broadcast(data)
		case <-h.quit:
			select {
			case data := <-h.pending:
				h.broadcast(data)
			default:
			}
			h.disconnectAll()
			return
		}
	}
}

// publish replaces whatever is waiting in the mailbox with data.
func (h *Hub) publish(data []byte) {
	h.mu.Lock()
	h.latest = data
	h.mu.Unlock()

	for {
		select {
		case h.pending <- data:
			return
		default:
		}
		select {
		case <-h.pending:
		default:
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.send(data); err != nil {
			log.WithError(err).WithField("viewer", id).Info("spectator dropped")
			h.remove(id)
		}
	}
}

// add registers conn as a viewer. Once the hub has stopped it says goodbye
// to conn instead and reports false.
func (h *Hub) add(conn *websocket.Conn) (uint64, *subscriber, []byte, bool) {
	sub := &subscriber{conn: conn}
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		sub.goodbye()
		return 0, nil, nil, false
	}
	id := h.nextID.Add(1)
	h.subscribers[id] = sub
	latest := h.latest
	h.mu.Unlock()
	return id, sub, latest, true
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

func (h *Hub) disconnectAll() {
	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[uint64]*subscriber)
	h.stopped = true
	h.mu.Unlock()

	for _, sub := range subs {
		sub.goodbye()
	}
}

// Count reports connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// QuitRequested is always false: viewers cannot stop the drive.
func (h *Hub) QuitRequested() bool { return false }

// Render queues snap for viewers. Encoding failures are logged, never
// returned, so a spectator problem cannot end the run.
func (h *Hub) Render(snap sim.Snapshot) error {
	data, err := json.Marshal(snapshotMessage{Type: "snapshot", Snapshot: snap})
	if err != nil {
		log.WithError(err).Error("failed to marshal snapshot")
		return nil
	}
	h.publish(data)
	return nil
}

// Finish queues the final result.
func (h *Hub) Finish(res sim.Result) {
	data, err := json.Marshal(resultMessage{
		Type:    "result",
		Outcome: res.Outcome,
		Score:   res.Score,
		Ticks:   res.Ticks,
	})
	if err != nil {
		log.WithError(err).Error("failed to marshal result")
		return
	}
	h.publish(data)
}

// Close flushes the last queued message, says goodbye to every viewer and
// stops the broadcaster.
func (h *Hub) Close() {
	h.closed.Do(func() { close(h.quit) })
	<-h.done
}

// Handler serves /ws for viewers and /healthz for health checks.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.quit:
		http.Error(w, "simulation over", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	id, sub, latest, ok := h.add(conn)
	if !ok {
		return
	}
	if latest != nil {
		if err := sub.send(latest); err != nil {
			h.remove(id)
			return
		}
	}

	// Viewers have nothing to say; reading only detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(id)
			return
		}
	}
}
