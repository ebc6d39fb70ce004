package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"workchat-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RoomKey names the live-delivery room for one channel. The convention is
// shared with clients: <workspace-url>-<channel-id>.
func RoomKey(workspaceURL string, channelID uint) string {
	return fmt.Sprintf("%s-%d", workspaceURL, channelID)
}

// Hub is the channel room registry: a process-local index of live connections
// keyed by room. It holds no durable state; it starts empty and is rebuilt by
// clients resubscribing after a restart.
type Hub struct {
	// rooms: room key -> subscribed clients
	rooms map[string]map[*Client]struct{}

	// clientRooms: reverse index, used to drop a client from every room on
	// disconnect
	clientRooms map[*Client]map[string]struct{}

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance room fan-out (optional)
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

const clusterChannel = "chat_room_events"

type clusterPayload struct {
	Origin  string          `json:"origin"`
	Room    string          `json:"room"`
	Message json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*Client]struct{}),
		clientRooms: make(map[*Client]map[string]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		rdb:         rdb,
		instanceID:  uuid.NewString(),
		logger:      log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clientRooms[client] = make(map[string]struct{})
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"conn_id": client.ID, "user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if rooms, ok := h.clientRooms[client]; ok {
				for room := range rooms {
					h.removeFromRoomLocked(room, client)
				}
				delete(h.clientRooms, client)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"conn_id": client.ID, "user_id": client.UserID})
			}
			h.mu.Unlock()
		}
	}
}

// Subscribe adds the client to a room. Membership authorization happens at
// the command gate in the handler, not here.
func (h *Hub) Subscribe(roomKey string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clientRooms[client]; !ok {
		// Disconnect raced the subscribe command; drop it.
		return
	}
	if h.rooms[roomKey] == nil {
		h.rooms[roomKey] = make(map[*Client]struct{})
	}
	h.rooms[roomKey][client] = struct{}{}
	h.clientRooms[client][roomKey] = struct{}{}
}

func (h *Hub) Unsubscribe(roomKey string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomLocked(roomKey, client)
	if rooms, ok := h.clientRooms[client]; ok {
		delete(rooms, roomKey)
	}
}

// Members reports the current number of subscribers in a room.
func (h *Hub) Members(roomKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomKey])
}

// Publish delivers the payload to every connection currently in the room and
// mirrors it to Redis for other instances. Best-effort: a subscriber with a
// full buffer is dropped, never waited on.
func (h *Hub) Publish(roomKey string, payload []byte) {
	h.deliverLocal(roomKey, payload)

	if h.rdb != nil {
		wire, _ := json.Marshal(clusterPayload{
			Origin:  h.instanceID,
			Room:    roomKey,
			Message: payload,
		})
		if err := h.rdb.Publish(context.Background(), clusterChannel, wire).Err(); err != nil {
			h.logger.Warn("Hub", "Cluster publish failed", map[string]interface{}{"room": roomKey, "error": err.Error()})
		}
	}
}

func (h *Hub) deliverLocal(roomKey string, payload []byte) {
	var stale []*Client

	h.mu.RLock()
	for client := range h.rooms[roomKey] {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer; catch-up happens through pagination.
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("Hub", "Send buffer full, dropping client", map[string]interface{}{"conn_id": client.ID, "room": roomKey})
		h.unregister <- client
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		// Local subscribers already got this from Publish.
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(payload.Room, payload.Message)
	}
}

// Shutdown clears the registry and closes every client. Registry state is
// never persisted, so there is nothing else to tear down.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clientRooms {
		close(client.Send)
	}
	h.rooms = make(map[string]map[*Client]struct{})
	h.clientRooms = make(map[*Client]map[string]struct{})
}

func (h *Hub) removeFromRoomLocked(roomKey string, client *Client) {
	if members, ok := h.rooms[roomKey]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, roomKey)
		}
	}
}
