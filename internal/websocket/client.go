package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Command is a frame sent by the client to manage its room subscriptions.
type Command struct {
	Event     string `json:"event"`
	ChannelID uint   `json:"channel_id"`
}

// CommandHandler processes a client frame. Subscribe commands go through the
// membership gate before the hub is touched.
type CommandHandler func(c *Client, cmd Command)

// Client is the middleman between one websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	// ID identifies this connection; one user may hold several.
	ID uuid.UUID

	UserID uint

	// WorkspaceURL scopes every room this connection may join.
	WorkspaceURL string

	// Buffered channel of outbound frames.
	Send chan []byte

	onCommand CommandHandler
}

// readPump consumes frames from the connection until it drops, then
// unregisters the client from every room it joined.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{"conn_id": c.ID, "error": err.Error()})
			}
			break
		}
		c.handleFrame(data)
	}
}

func (c *Client) handleFrame(data []byte) {
	if c.onCommand == nil {
		return
	}
	cmd, err := parseCommand(data)
	if err != nil {
		// Unknown frames are ignored; the protocol is command-only upstream.
		return
	}
	c.onCommand(c, cmd)
}

// writePump pushes frames from the hub to the connection and keeps it alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(payload)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
