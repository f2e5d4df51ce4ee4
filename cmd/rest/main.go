package main

import (
	"context"
	"log"

	"client-retention-be/internal/bootstrap"
	"client-retention-be/internal/config"
	"client-retention-be/internal/server"
	"client-retention-be/internal/tracer"
	"client-retention-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting mail consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()
	go container.NotificationService.Start()

	// 5. Initialize and run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
