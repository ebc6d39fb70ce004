package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	EventSubscribe   = "subscribe"
	EventUnsubscribe = "unsubscribe"
	EventMessage     = "message"
)

// Frame is the wire shape of a payload delivered to room subscribers, keyed
// under an event label.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func EncodeFrame(event string, data interface{}) ([]byte, error) {
	return json.Marshal(Frame{Event: event, Data: data})
}

func parseCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, err
	}
	if cmd.Event != EventSubscribe && cmd.Event != EventUnsubscribe {
		return Command{}, fmt.Errorf("unknown command event %q", cmd.Event)
	}
	if cmd.ChannelID == 0 {
		return Command{}, fmt.Errorf("missing channel_id")
	}
	return cmd, nil
}

// ServeWs runs the session for an upgraded connection. It registers the
// client, then pumps frames until the connection drops; disconnect implicitly
// unsubscribes the client from every room.
func ServeWs(hub *Hub, conn *websocket.Conn, userID uint, workspaceURL string, onCommand CommandHandler) {
	client := &Client{
		Hub:          hub,
		Conn:         conn,
		ID:           uuid.New(),
		UserID:       userID,
		WorkspaceURL: workspaceURL,
		Send:         make(chan []byte, 256),
		onCommand:    onCommand,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // runs on the handler goroutine
}
