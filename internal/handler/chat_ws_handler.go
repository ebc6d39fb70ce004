package handler

import (
	"context"

	"workchat-be/internal/pkg/logger"
	"workchat-be/internal/pkg/serverutils"
	"workchat-be/internal/service"
	internalWS "workchat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatWsHandler upgrades authenticated clients onto the hub and gates their
// room subscriptions through the membership check.
type ChatWsHandler struct {
	channelService service.IChannelService
	hub            *internalWS.Hub
	logger         logger.ILogger
}

func NewChatWsHandler(channelService service.IChannelService, hub *internalWS.Hub, log logger.ILogger) *ChatWsHandler {
	return &ChatWsHandler{
		channelService: channelService,
		hub:            hub,
		logger:         log,
	}
}

// ServeWs handles the websocket handshake for one workspace.
func (h *ChatWsHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on websocket requests, so the token rides
	// the query string; tooling may still use the Authorization header.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	userID, err := serverutils.ParseUserID(tokenStr)
	if err != nil {
		h.logger.Warn("ChatWsHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workspaceURL := c.Params("url")

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatWsHandler", "WebSocket session started", map[string]interface{}{"user_id": userID, "workspace": workspaceURL})
			internalWS.ServeWs(h.hub, conn, userID, workspaceURL, h.handleCommand)
			h.logger.Info("ChatWsHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID, "workspace": workspaceURL})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// handleCommand runs on the client's read goroutine. Subscribe goes through
// the membership gate; a rejected subscribe is dropped without touching the
// hub.
func (h *ChatWsHandler) handleCommand(client *internalWS.Client, cmd internalWS.Command) {
	switch cmd.Event {
	case internalWS.EventSubscribe:
		roomKey, err := h.channelService.AuthorizeSubscribe(context.Background(), client.WorkspaceURL, cmd.ChannelID, client.UserID)
		if err != nil {
			h.logger.Warn("ChatWsHandler", "Subscribe rejected", map[string]interface{}{
				"user_id": client.UserID, "channel_id": cmd.ChannelID, "error": err.Error(),
			})
			return
		}
		h.hub.Subscribe(roomKey, client)

	case internalWS.EventUnsubscribe:
		h.hub.Unsubscribe(internalWS.RoomKey(client.WorkspaceURL, cmd.ChannelID), client)
	}
}

// RegisterRoutes registers the websocket endpoint.
func (h *ChatWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/:url", h.ServeWs)
}
