package main

import (
	"context"
	"log"

	"chat-journal-be/internal/bootstrap"
	"chat-journal-be/internal/config"
	"chat-journal-be/internal/server"
	"chat-journal-be/internal/tracer"
	"chat-journal-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelEndpoint)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 5. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
