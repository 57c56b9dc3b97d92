package socketio

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/xrpscan/explorer/logger"
)

const (
	pingInterval = 25 * time.Second
	pingTimeout  = 20 * time.Second
	writeTimeout = 5 * time.Second
)

var (
	hubInstance *Hub
	hubOnce     sync.Once
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type EngineHandshake struct {
	SID          string   `json:"sid"`
	Upgrades     []string `json:"upgrades"`
	PingInterval int      `json:"pingInterval"`
	PingTimeout  int      `json:"pingTimeout"`
}

type ClientConnection struct {
	conn *websocket.Conn
	sid  string
	ns   string
	mu   sync.Mutex
}

func (c *ClientConnection) write(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	defer c.conn.SetWriteDeadline(time.Time{})
	return c.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// Hub speaks enough Engine.IO v4 and Socket.IO to push events to browser
// clients over a websocket transport.
type Hub struct {
	clients map[string]*ClientConnection
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*ClientConnection)}
}

// GetHub returns the process-wide hub.
func GetHub() *Hub {
	hubOnce.Do(func() {
		hubInstance = NewHub()
	})
	return hubInstance
}

func generateSID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func handshake(sid string, upgrades []string) string {
	js, _ := json.Marshal(EngineHandshake{
		SID:          sid,
		Upgrades:     upgrades,
		PingInterval: int(pingInterval / time.Millisecond),
		PingTimeout:  int(pingTimeout / time.Millisecond),
	})
	return "0" + string(js)
}

// ClientCount returns the number of connected websocket clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) HandleSocketIO(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "*")

	query := r.URL.Query()
	if query.Get("EIO") != "4" {
		http.Error(w, "Only Engine.IO v4 allowed", http.StatusBadRequest)
		return
	}

	switch query.Get("transport") {
	case "polling":
		w.Write([]byte(handshake(generateSID(), []string{"websocket"})))
	case "websocket":
		h.serveWebsocket(w, r, query.Get("sid"))
	default:
		http.Error(w, "Unsupported transport", http.StatusBadRequest)
	}
}

func (h *Hub) serveWebsocket(w http.ResponseWriter, r *http.Request, sid string) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer ws.Close()

	if sid == "" {
		sid = generateSID()
	}
	client := &ClientConnection{conn: ws, sid: sid, ns: "/"}

	if err := client.write(handshake(sid, []string{})); err != nil {
		return
	}

	_, recv, err := ws.ReadMessage()
	if err != nil {
		logger.Log.Debug().Err(err).Str("sid", sid).Msg("Client disconnected before CONNECT")
		return
	}
	raw := string(recv)
	if !strings.HasPrefix(raw, "40") {
		logger.Log.Warn().Str("sid", sid).Str("msg", raw).Msg("Invalid CONNECT packet")
		return
	}
	if len(raw) > 2 && raw[2] == '/' {
		client.ns = strings.SplitN(raw[2:], ",", 2)[0]
	}

	ack := fmt.Sprintf(`40{"sid":"%s"}`, sid)
	if client.ns != "/" {
		ack = fmt.Sprintf(`40%s,{"sid":"%s"}`, client.ns, sid)
	}
	if err := client.write(ack); err != nil {
		return
	}

	h.mu.Lock()
	h.clients[sid] = client
	h.mu.Unlock()
	logger.Log.Info().Str("sid", sid).Str("ns", client.ns).Msg("Socket.IO client connected")

	done := make(chan struct{})
	defer func() {
		close(done)
		h.mu.Lock()
		delete(h.clients, sid)
		h.mu.Unlock()
		logger.Log.Info().Str("sid", sid).Msg("Socket.IO client disconnected")
	}()

	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.write("2"); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if msg := string(payload); msg != "3" {
			logger.Log.Debug().Str("sid", sid).Str("payload", msg).Msg("Socket.IO message received")
		}
	}
}

// eventFrame renders a Socket.IO EVENT packet for namespace ns.
func eventFrame(ns, event string, payload []byte) string {
	if ns == "/" {
		return fmt.Sprintf(`42["%s",%s]`, event, payload)
	}
	return fmt.Sprintf(`42%s,["%s",%s]`, ns, event, payload)
}

// Emit sends event to every connected client and returns how many writes
// succeeded. Failed writes are left for the read loop to clean up.
func (h *Hub) Emit(event string, data interface{}) int {
	h.mu.RLock()
	clients := make([]*ClientConnection, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		return 0
	}

	payload, err := json.Marshal(data)
	if err != nil {
		logger.Log.Error().Err(err).Str("event", event).Msg("Failed to marshal Socket.IO event")
		return 0
	}

	sent := 0
	for _, cli := range clients {
		if err := cli.write(eventFrame(cli.ns, event, payload)); err != nil {
			logger.Log.Warn().Err(err).Str("sid", cli.sid).Str("event", event).Msg("Socket.IO emit failed")
			continue
		}
		sent++
	}
	logger.Log.Debug().Str("event", event).Int("clients_count", len(clients)).Int("success_count", sent).Msg("Emitted Socket.IO event")
	return sent
}

func (h *Hub) EmitLedgerClosed(event LedgerClosedEvent) int {
	return h.Emit(EventLedgerClosed, event)
}

func (h *Hub) EmitLedgerSummary(event LedgerSummaryEvent) int {
	return h.Emit(EventLedgerSummary, event)
}
