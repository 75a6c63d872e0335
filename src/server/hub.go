package server

import (
	"encoding/json"
	"net/http"
	"time"

	"stock-insight/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.connections.Add(1)
			s.Metrics.WSClients.Inc()
			// Send full state on connect. The live state map keeps being
			// mutated under stateMutex while the client marshals, so hand
			// out a copy, never the state itself.
			s.stateMutex.RLock()
			initial := s.filteredState(nil)
			s.stateMutex.RUnlock()
			client.send <- initial

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
				s.connections.Add(-1)
				s.Metrics.WSClients.Dec()
			}

		case update := <-s.broadcast:
			s.mergeState(update)

			for client := range s.clients {
				select {
				case client.send <- update:
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
					s.connections.Add(-1)
					s.Metrics.WSClients.Dec()
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------

// mergeState folds an update into the served state. Updates carry only the
// recomputed symbols, so snapshots for other symbols are kept.
func (s *APIServer) mergeState(update *models.MSnapshotUpdate) {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	for symbol, snapshot := range update.Snapshots {
		s.latestState.Snapshots[symbol] = snapshot
	}
	s.latestState.Timestamp = update.Timestamp
	s.latestState.Type = "UPDATE"
}

// -----------------------------------------------------------------------------
// Snapshot Publisher Implementation
// -----------------------------------------------------------------------------

// Publish queues an update for state merge and client broadcast.
func (s *APIServer) Publish(update *models.MSnapshotUpdate) {
	if update == nil || len(update.Snapshots) == 0 {
		return
	}
	if update.Timestamp == 0 {
		update.Timestamp = time.Now().UTC().Unix()
	}
	update.Type = "UPDATE"

	s.broadcast <- update
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MSnapshotUpdate, 256),
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	s.stateMutex.RLock()
	response := s.filteredState(cmd.Symbols)
	s.stateMutex.RUnlock()

	select {
	case client.send <- response:
	default:
		// Client buffer full; the Hub loop prunes it on the next broadcast.
	}
}

// -----------------------------------------------------------------------------

// filteredState returns the current state restricted to the given symbols.
// An empty filter means everything. Caller holds stateMutex.
func (s *APIServer) filteredState(symbols []string) *models.MSnapshotUpdate {
	filtered := make(map[string]*models.MSnapshot)

	if len(symbols) == 0 {
		for sym, snap := range s.latestState.Snapshots {
			filtered[sym] = snap
		}
	} else {
		for _, sym := range symbols {
			if snap, ok := s.latestState.Snapshots[sym]; ok {
				filtered[sym] = snap
			}
		}
	}

	return &models.MSnapshotUpdate{
		Type:      "INITIAL",
		Snapshots: filtered,
		Timestamp: s.latestState.Timestamp,
	}
}
