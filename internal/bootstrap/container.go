package bootstrap

import (
	"context"
	"log"

	"workchat-be/internal/config"
	"workchat-be/internal/controller"
	"workchat-be/internal/handler"
	"workchat-be/internal/pkg/logger"
	"workchat-be/internal/repository/memory"
	"workchat-be/internal/repository/unitofwork"
	"workchat-be/internal/service"
	"workchat-be/internal/websocket"
	pktNats "workchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	ChannelController controller.IChannelController

	// WebSockets
	ChatWsHandler *handler.ChatWsHandler
	WebSocketHub  *websocket.Hub

	// Background services (run by main)
	RealtimeForwarder service.IRealtimeForwarderService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process room bus between the coordinator and the hub forwarder
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// NATS domain-event publisher; posting works without it
	var eventBus service.DomainEventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventBus = natsPub
	}

	// Redis for cross-instance room fan-out; single-instance without it
	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb = redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (cross-instance fan-out disabled)", err)
		rdb = nil
	}

	// Room registry
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	workspaceCache := memory.NewWorkspaceCache()

	// Services
	realtimePublisher := service.NewRealtimePublisher(service.RoomTopic, pubSub)
	realtimeForwarder := service.NewRealtimeForwarderService(pubSub, service.RoomTopic, wsHub, wsLogger)

	channelService := service.NewChannelService(uowFactory, workspaceCache)
	chatService := service.NewChatService(
		uowFactory,
		workspaceCache,
		realtimePublisher,
		eventBus,
		cfg.Database.AppendTimeout,
		sysLogger,
	)

	// Handlers and controllers
	chatWsHandler := handler.NewChatWsHandler(channelService, wsHub, wsLogger)

	return &Container{
		ChannelController: controller.NewChannelController(channelService, chatService),
		ChatWsHandler:     chatWsHandler,
		WebSocketHub:      wsHub,
		RealtimeForwarder: realtimeForwarder,
		Logger:            sysLogger,
	}
}
