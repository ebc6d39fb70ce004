package main

import (
	"context"
	"log"

	"workchat-be/internal/bootstrap"
	"workchat-be/internal/config"
	"workchat-be/internal/server"
	"workchat-be/internal/tracer"
	"workchat-be/pkg/database"
)

func main() {
	cfg := config.Load()

	shutdownTracer := tracer.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	defer container.Logger.Sync()

	// Forward subscribes and returns; its consumer loop runs on its own
	// goroutine. A subscribe failure here means no live delivery at all.
	forwarderCtx, cancelForwarder := context.WithCancel(context.Background())
	defer cancelForwarder()
	if err := container.RealtimeForwarder.Forward(forwarderCtx); err != nil {
		log.Fatalf("Failed to start realtime forwarder: %v", err)
	}

	srv := server.New(cfg, container)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
